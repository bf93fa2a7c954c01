package migration

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.handmade.network/hmn/ltree/src/cli"
	"git.handmade.network/hmn/ltree/src/config"
	"git.handmade.network/hmn/ltree/src/db"
	"git.handmade.network/hmn/ltree/src/migration/migrations"
	"git.handmade.network/hmn/ltree/src/migration/types"
	"git.handmade.network/hmn/ltree/src/oops"
	"git.handmade.network/hmn/ltree/src/utils"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
)

var listMigrations bool
var waitForDatabase time.Duration

func init() {
	migrateCommand := &cobra.Command{
		Use:   "migrate [target migration id]",
		Short: "Run database migrations",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if waitForDatabase > 0 {
				waitCtx, cancel := context.WithTimeout(ctx, waitForDatabase)
				err := db.WaitForDatabase(waitCtx, config.PostgresConfig{})
				cancel()
				if err != nil {
					fmt.Printf("ERROR: %v\n", err)
					os.Exit(1)
				}
			}

			conn := db.NewConn()
			defer conn.Close(ctx)

			if listMigrations {
				ListMigrations(ctx, conn)
				return
			}

			targetVersion := time.Time{}
			if len(args) > 0 {
				var err error
				targetVersion, err = time.Parse(time.RFC3339, args[0])
				if err != nil {
					fmt.Printf("ERROR: bad version string: %v\n", err)
					os.Exit(1)
				}
			}
			if err := Migrate(ctx, conn, types.MigrationVersion(targetVersion)); err != nil {
				fmt.Printf("ERROR: %v\n", err)
				os.Exit(1)
			}
		},
	}
	migrateCommand.Flags().BoolVar(&listMigrations, "list", false, "List available migrations")
	migrateCommand.Flags().DurationVar(&waitForDatabase, "wait", 0, "Wait up to this long for the database to come up")

	makeMigrationCommand := &cobra.Command{
		Use:   "makemigration <name> <description>...",
		Short: "Create a new database migration file",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 2 {
				fmt.Printf("You must provide a name and a description.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			name := args[0]
			description := strings.Join(args[1:], " ")

			MakeMigration(name, description)
		},
	}

	cli.LtreeCommand.AddCommand(migrateCommand)
	cli.LtreeCommand.AddCommand(makeMigrationCommand)
}

func getSortedMigrationVersions() []types.MigrationVersion {
	var allVersions []types.MigrationVersion
	for migrationTime := range migrations.All {
		allVersions = append(allVersions, migrationTime)
	}
	sort.Slice(allVersions, func(i, j int) bool {
		return allVersions[i].Before(allVersions[j])
	})

	return allVersions
}

func LatestVersion() types.MigrationVersion {
	allVersions := getSortedMigrationVersions()
	return allVersions[len(allVersions)-1]
}

func getCurrentVersion(ctx context.Context, conn db.ConnOrTx) (types.MigrationVersion, error) {
	var currentVersion time.Time
	row := conn.QueryRow(ctx, "SELECT version FROM ltree_migration")
	err := row.Scan(&currentVersion)
	if err != nil {
		return types.MigrationVersion{}, err
	}
	currentVersion = currentVersion.UTC()

	return types.MigrationVersion(currentVersion), nil
}

func ListMigrations(ctx context.Context, conn *pgx.Conn) {
	currentVersion, _ := getCurrentVersion(ctx, conn)
	for _, version := range getSortedMigrationVersions() {
		migration := migrations.All[version]
		indicator := "  "
		if version.Equal(currentVersion) {
			indicator = "✔ "
		}
		fmt.Printf("%s%v (%s: %s)\n", indicator, version, migration.Name(), migration.Description())
	}
}

/*
Works out which migrations to run, in order, to get from current to target.
A zero target means the latest version. A zero current means nothing has been
applied yet.
*/
func planMigration(allVersions []types.MigrationVersion, current, target types.MigrationVersion) ([]types.MigrationVersion, bool, error) {
	if target.IsZero() {
		target = allVersions[len(allVersions)-1]
	}

	currentIndex := -1
	targetIndex := -1
	for i, version := range allVersions {
		if current.Equal(version) {
			currentIndex = i
		}
		if target.Equal(version) {
			targetIndex = i
		}
	}

	if targetIndex < 0 {
		return nil, false, fmt.Errorf("could not find migration with version %v", target)
	}
	if currentIndex < 0 && !current.IsZero() {
		return nil, false, fmt.Errorf("database is at unknown migration version %v", current)
	}

	var versions []types.MigrationVersion
	if currentIndex < targetIndex {
		for i := currentIndex + 1; i <= targetIndex; i++ {
			versions = append(versions, allVersions[i])
		}
		return versions, true, nil
	}
	for i := currentIndex; i > targetIndex; i-- {
		versions = append(versions, allVersions[i])
	}
	return versions, false, nil
}

func Migrate(ctx context.Context, conn *pgx.Conn, targetVersion types.MigrationVersion) error {
	// create migration table
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ltree_migration (
			version		TIMESTAMP WITH TIME ZONE
		)
	`)
	if err != nil {
		return oops.New(err, "failed to create migration table")
	}

	// ensure there is a row
	numRows, err := db.QueryOneScalar[int64](ctx, conn, "SELECT COUNT(*) FROM ltree_migration")
	if err != nil {
		return err
	}
	if numRows < 1 {
		_, err := conn.Exec(ctx, "INSERT INTO ltree_migration (version) VALUES ($1)", time.Time{})
		if err != nil {
			return oops.New(err, "failed to insert initial migration row")
		}
	}

	currentVersion, err := getCurrentVersion(ctx, conn)
	if err != nil {
		return oops.New(err, "failed to get current version")
	}
	if currentVersion.IsZero() {
		fmt.Println("This is the first time you have run database migrations.")
	} else {
		fmt.Printf("Current version: %s\n", currentVersion.String())
	}

	allVersions := getSortedMigrationVersions()
	versions, up, err := planMigration(allVersions, currentVersion, targetVersion)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Println("Already migrated; nothing to do.")
		return nil
	}

	for _, version := range versions {
		migration := migrations.All[version]

		newVersion := version
		if !up {
			newVersion = types.MigrationVersion{}
			for i, v := range allVersions {
				if v.Equal(version) && i > 0 {
					newVersion = allVersions[i-1]
				}
			}
		}

		if up {
			fmt.Printf("Applying migration %v (%v)\n", version, migration.Name())
		} else {
			fmt.Printf("Rolling back migration %v\n", version)
		}

		err := applyMigration(ctx, conn, migration, up, newVersion)
		if err != nil {
			return oops.New(err, "migration %v (%s) failed", version, migration.Name())
		}
	}

	return nil
}

// Unimplemented migrations panic, so panics are returned as errors like any other failure.
func applyMigration(ctx context.Context, conn *pgx.Conn, migration types.Migration, up bool, newVersion types.MigrationVersion) (err error) {
	defer utils.RecoverPanicAsError(&err)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	if up {
		err = migration.Up(ctx, tx)
	} else {
		err = migration.Down(ctx, tx)
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, "UPDATE ltree_migration SET version = $1", time.Time(newVersion))
	if err != nil {
		return oops.New(err, "failed to update version in migrations table")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return oops.New(err, "failed to commit transaction")
	}
	return nil
}

//go:embed migrationTemplate.txt
var migrationTemplate string

func MakeMigration(name, description string) {
	result := migrationTemplate
	result = strings.ReplaceAll(result, "%NAME%", name)
	result = strings.ReplaceAll(result, "%DESCRIPTION%", fmt.Sprintf("%#v", description))

	now := time.Now().UTC()
	nowConstructor := fmt.Sprintf("time.Date(%d, %d, %d, %d, %d, %d, 0, time.UTC)", now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second())
	result = strings.ReplaceAll(result, "%DATE%", nowConstructor)

	safeVersion := strings.ReplaceAll(types.MigrationVersion(now).String(), ":", "")
	filename := fmt.Sprintf("%v_%v.go", safeVersion, name)
	path := filepath.Join("src", "migration", "migrations", filename)

	err := os.WriteFile(path, []byte(result), 0644)
	if err != nil {
		panic(fmt.Errorf("failed to write migration file: %w", err))
	}

	fmt.Println("Successfully created migration file:")
	fmt.Println(path)
}
