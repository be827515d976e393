// Command migrate brings the configured Spanner database up to the catalog
// schema. Against the emulator it also creates the instance and database when
// they are missing, so a fresh environment needs nothing beyond this command.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	projectID  = flag.String("project", envOr("SPANNER_PROJECT_ID", "test-project"), "GCP project id")
	instanceID = flag.String("instance", envOr("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance id")
	databaseID = flag.String("database", envOr("SPANNER_DATABASE_ID", "catalog-db"), "Spanner database id")
	schemaDir  = flag.String("migrations", "migrations", "directory holding .sql migration files")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		log.Printf("Targeting Spanner emulator at %s", host)
	}

	if err := run(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema for %s is up to date", *databaseID)
}

func run(ctx context.Context) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	databaseAdmin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("database admin client: %w", err)
	}
	defer databaseAdmin.Close()

	if err := ensureInstance(ctx, instanceAdmin); err != nil {
		return err
	}
	if err := ensureDatabase(ctx, databaseAdmin); err != nil {
		return err
	}
	return applySchema(ctx, databaseAdmin)
}

// ensureInstance creates the instance when it does not exist yet. Outside the
// emulator the instance is expected to be provisioned already.
func ensureInstance(ctx context.Context, admin *instance.InstanceAdminClient) error {
	name := fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID)

	_, err := admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: name})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("check instance %s: %w", *instanceID, err)
	}

	log.Printf("Creating instance %s", *instanceID)
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + *projectID,
		InstanceId: *instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", *projectID),
			DisplayName: *instanceID,
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("create instance %s: %w", *instanceID, err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("wait for instance %s: %w", *instanceID, err)
	}
	return nil
}

func ensureDatabase(ctx context.Context, admin *database.DatabaseAdminClient) error {
	name := fmt.Sprintf("projects/%s/instances/%s/databases/%s", *projectID, *instanceID, *databaseID)

	_, err := admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: name})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("check database %s: %w", *databaseID, err)
	}

	log.Printf("Creating database %s", *databaseID)
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", *databaseID),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("create database %s: %w", *databaseID, err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("wait for database %s: %w", *databaseID, err)
	}
	return nil
}

// applySchema applies every migration file in lexical order. Spanner DDL has
// no transactional migration table; files are expected to be idempotent-safe
// to re-run only against a fresh database.
func applySchema(ctx context.Context, admin *database.DatabaseAdminClient) error {
	files, err := filepath.Glob(filepath.Join(*schemaDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations in %s: %w", *schemaDir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .sql files in %s", *schemaDir)
	}
	sort.Strings(files)

	name := fmt.Sprintf("projects/%s/instances/%s/databases/%s", *projectID, *instanceID, *databaseID)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		statements := splitStatements(string(content))
		log.Printf("Applying %s (%d statements)", filepath.Base(file), len(statements))

		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   name,
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("apply %s: %w", file, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("apply %s: %w", file, err)
		}
	}
	return nil
}

// splitStatements strips SQL line comments and splits on semicolons, since
// UpdateDatabaseDdl wants one statement per entry.
func splitStatements(content string) []string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		kept = append(kept, line)
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
