package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cliinternal "github.com/lesfleursdelanuitdev/ibdprep/cmd/ibdprep/internal"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/query"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query <command> [args...]",
	Short: "Query a persisted pedigree",
	Long: "Read-only lookups against a SQLite query index written by a prior build:\n" +
		"  individual <id>\n" +
		"  pedigree <index>\n" +
		"  power <index> [id...]\n" +
		"  kinship <i> <j>",
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("sqlite", "", "Path to the SQLite query index (required)")
	queryCmd.MarkFlagRequired("sqlite")
	queryCmd.Flags().StringP("format", "f", "table", "Output format for individual/pedigree (table, json, yaml)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	sqlitePath, _ := cmd.Flags().GetString("sqlite")
	format, _ := cmd.Flags().GetString("format")

	hs, err := store.Open(sqlitePath, "")
	if err != nil {
		cliinternal.PrintError("✗ cannot open %s: %v\n", sqlitePath, err)
		return err
	}
	defer hs.Close()

	idx := query.NewSQLiteIndex(hs.SQLite())

	sub := args[0]
	rest := args[1:]

	switch sub {
	case "individual", "indi", "i":
		return queryIndividual(idx, rest, format)
	case "pedigree", "ped", "p":
		return queryPedigree(hs.SQLite(), rest, format)
	case "power":
		return queryPower(idx, rest)
	case "kinship", "phi":
		return queryKinship(idx, rest)
	default:
		return fmt.Errorf("unknown query command %q", sub)
	}
}

// individualSummary is the marshaled shape for "query individual" in
// json/yaml output mode.
type individualSummary struct {
	IBDID         int `json:"ibdid" yaml:"ibdid"`
	PedigreeIndex int `json:"pedigree_index" yaml:"pedigree_index"`
	Generation    int `json:"generation" yaml:"generation"`
}

// pedigreeSummary is the marshaled shape for "query pedigree" in
// json/yaml output mode.
type pedigreeSummary struct {
	FounderCount    int  `json:"founder_count" yaml:"founder_count"`
	IndividualCount int  `json:"individual_count" yaml:"individual_count"`
	FamilyCount     int  `json:"family_count" yaml:"family_count"`
	HasLoops        bool `json:"has_loops" yaml:"has_loops"`
	MinLoopBreakers int  `json:"min_loop_breakers" yaml:"min_loop_breakers"`
	Inbred          bool `json:"inbred" yaml:"inbred"`
}

func printFormatted(format string, v interface{}) error {
	switch format {
	case "json":
		enc, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		cliinternal.PrintInfo("%s\n", enc)
		return nil
	case "yaml":
		enc, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		cliinternal.PrintInfo("%s", enc)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want table, json, or yaml)", format)
	}
}

func queryIndividual(idx *query.SQLiteIndex, args []string, format string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: query individual <id>")
	}
	ibdid, pedigreeIndex, generation, found, err := idx.Individual(args[0])
	if err != nil {
		return err
	}
	if !found {
		cliinternal.PrintWarning("no such individual: %s\n", args[0])
		return nil
	}

	if format != "table" {
		return printFormatted(format, individualSummary{IBDID: ibdid, PedigreeIndex: pedigreeIndex, Generation: generation})
	}
	cliinternal.PrintInfo("ibdid: %d\n", ibdid)
	cliinternal.PrintInfo("pedigree: %d\n", pedigreeIndex)
	cliinternal.PrintInfo("generation: %d\n", generation)
	return nil
}

func queryPedigree(db *sql.DB, args []string, format string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: query pedigree <index>")
	}
	pedigreeIndex, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid pedigree index %q: %w", args[0], err)
	}

	row := db.QueryRow(`
		SELECT founder_count, individual_count, family_count, has_loops, min_loop_breakers, inbred
		FROM pedigrees WHERE pedigree_index = ?
	`, pedigreeIndex)

	var founderCount, individualCount, familyCount, hasLoops, minLoopBreakers, inbred int
	if err := row.Scan(&founderCount, &individualCount, &familyCount, &hasLoops, &minLoopBreakers, &inbred); err != nil {
		if err == sql.ErrNoRows {
			cliinternal.PrintWarning("no such pedigree: %d\n", pedigreeIndex)
			return nil
		}
		return err
	}

	summary := pedigreeSummary{
		FounderCount: founderCount, IndividualCount: individualCount, FamilyCount: familyCount,
		HasLoops: hasLoops == 1, MinLoopBreakers: minLoopBreakers, Inbred: inbred == 1,
	}
	if format != "table" {
		return printFormatted(format, summary)
	}

	cliinternal.PrintInfo("founders: %d\n", summary.FounderCount)
	cliinternal.PrintInfo("individuals: %d\n", summary.IndividualCount)
	cliinternal.PrintInfo("families: %d\n", summary.FamilyCount)
	cliinternal.PrintInfo("has loops: %v\n", summary.HasLoops)
	cliinternal.PrintInfo("min loop breakers: %d\n", summary.MinLoopBreakers)
	cliinternal.PrintInfo("inbred: %v\n", summary.Inbred)
	return nil
}

func queryPower(idx *query.SQLiteIndex, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: query power <index> [id...]")
	}
	pedigreeIndex, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid pedigree index %q: %w", args[0], err)
	}
	count, err := idx.PedigreePower(pedigreeIndex, args[1:])
	if err != nil {
		return err
	}
	cliinternal.PrintInfo("power: %d\n", count)
	return nil
}

func queryKinship(idx *query.SQLiteIndex, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: query kinship <i> <j>")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid sequence number %q: %w", args[0], err)
	}
	j, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid sequence number %q: %w", args[1], err)
	}

	phi, delta7, found, err := idx.Kinship(i, j)
	if err != nil {
		return err
	}
	if !found {
		cliinternal.PrintInfo("phi: 0.0000000\n")
		cliinternal.PrintInfo("delta7: 0.0000000\n")
		return nil
	}
	cliinternal.PrintInfo("phi: %.7f\n", phi)
	cliinternal.PrintInfo("delta7: %.7f\n", delta7)
	return nil
}

// GetQueryCommand returns the query command.
func GetQueryCommand() *cobra.Command {
	return queryCmd
}
