// Package committer provides the transaction scope shared by the catalog
// repositories. A Coordinator wraps Spanner read-write transactions; a Plan
// collects mutations built during a transaction so they can be buffered in
// one step. Statements issued inside the scope are only visible to other
// transactions after commit, and any error rolls the whole scope back.
package committer

import (
	"context"

	"cloud.google.com/go/spanner"
)

// Plan is an ordered collection of mutations to apply atomically.
type Plan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates an empty Plan.
func NewPlan() *Plan {
	return &Plan{mutations: make([]*spanner.Mutation, 0)}
}

// Add appends a mutation. Nil mutations are ignored for convenience.
func (p *Plan) Add(mut *spanner.Mutation) {
	if mut != nil {
		p.mutations = append(p.mutations, mut)
	}
}

// AddMultiple appends several mutations.
func (p *Plan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		p.Add(mut)
	}
}

// IsEmpty reports whether the plan holds no mutations.
func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

// Count returns the number of collected mutations.
func (p *Plan) Count() int {
	return len(p.mutations)
}

// BufferTo buffers the plan's mutations into txn. They take effect at commit,
// after any DML already issued in the same transaction.
func (p *Plan) BufferTo(txn *spanner.ReadWriteTransaction) error {
	if p.IsEmpty() {
		return nil
	}
	return txn.BufferWrite(p.mutations)
}

// Coordinator executes transactional scopes against a Spanner client.
type Coordinator struct {
	client *spanner.Client
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(client *spanner.Client) *Coordinator {
	return &Coordinator{client: client}
}

// ReadWrite runs fn inside a single read-write transaction. If fn returns an
// error, nothing is committed. The caller's context deadline bounds the
// transaction; on expiry it is rolled back and the error surfaces unchanged.
func (c *Coordinator) ReadWrite(ctx context.Context, fn func(ctx context.Context, txn *spanner.ReadWriteTransaction) error) error {
	_, err := c.client.ReadWriteTransaction(ctx, fn)
	return err
}

// Apply commits a plan outside any explicit transaction scope, as one atomic
// write.
func (c *Coordinator) Apply(ctx context.Context, plan *Plan) error {
	if plan.IsEmpty() {
		return nil
	}
	_, err := c.client.Apply(ctx, plan.mutations)
	return err
}
