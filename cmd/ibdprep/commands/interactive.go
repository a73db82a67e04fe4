package commands

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	cliinternal "github.com/lesfleursdelanuitdev/ibdprep/cmd/ibdprep/internal"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/query"
	"github.com/lesfleursdelanuitdev/ibdprep/internal/store"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive read-only query mode",
	Long:  "Open a persisted SQLite query index and answer individual/pedigree/power/kinship lookups one line at a time. Never mutates the store.",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

// replState holds the single open store for the lifetime of the REPL.
type replState struct {
	hs  *store.HybridStore
	idx *query.SQLiteIndex
}

var state *replState

func init() {
	interactiveCmd.Flags().String("sqlite", "", "Path to the SQLite query index (required)")
	interactiveCmd.MarkFlagRequired("sqlite")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	sqlitePath, _ := cmd.Flags().GetString("sqlite")

	hs, err := store.Open(sqlitePath, "")
	if err != nil {
		cliinternal.PrintError("✗ cannot open %s: %v\n", sqlitePath, err)
		return err
	}
	defer hs.Close()

	state = &replState{hs: hs, idx: query.NewSQLiteIndex(hs.SQLite())}

	cliinternal.PrintSuccess("✓ opened %s\n", sqlitePath)
	cliinternal.PrintInfo("Type 'help' for available commands, 'exit' to quit.\n\n")

	startREPL()
	return nil
}

func startREPL() {
	defer func() {
		if r := recover(); r != nil {
			cliinternal.PrintInfo("Note: falling back to simple input mode\n")
			startSimpleREPL()
		}
	}()

	fileInfo, err := os.Stdin.Stat()
	if err != nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		startSimpleREPL()
		return
	}

	p := prompt.New(
		executor,
		completer,
		prompt.OptionPrefix("ibdprep> "),
		prompt.OptionTitle("ibdprep interactive mode"),
		prompt.OptionPrefixTextColor(prompt.Cyan),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
	)
	p.Run()
}

func startSimpleREPL() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("ibdprep> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		executor(line)
	}
	if err := scanner.Err(); err != nil {
		cliinternal.PrintError("error reading input: %v\n", err)
	}
}

func executor(in string) {
	in = strings.TrimSpace(in)
	if in == "" {
		return
	}

	parts := strings.Fields(in)
	command := parts[0]
	args := parts[1:]

	switch command {
	case "exit", "quit", "q":
		cliinternal.PrintInfo("Goodbye!\n")
		os.Exit(0)

	case "help", "h":
		printReplHelp()

	case "individual", "indi", "i":
		if len(args) == 0 {
			cliinternal.PrintError("usage: individual <id>\n")
			return
		}
		ibdid, pedigreeIndex, generation, found, err := state.idx.Individual(args[0])
		if err != nil {
			cliinternal.PrintError("error: %v\n", err)
			return
		}
		if !found {
			cliinternal.PrintWarning("no such individual: %s\n", args[0])
			return
		}
		cliinternal.PrintInfo("ibdid=%d pedigree=%d generation=%d\n", ibdid, pedigreeIndex, generation)

	case "pedigree", "ped", "p":
		if len(args) == 0 {
			cliinternal.PrintError("usage: pedigree <index>\n")
			return
		}
		printPedigreeRow(state.hs.SQLite(), args[0])

	case "power":
		if len(args) == 0 {
			cliinternal.PrintError("usage: power <index> [id...]\n")
			return
		}
		pedigreeIndex, err := strconv.Atoi(args[0])
		if err != nil {
			cliinternal.PrintError("invalid pedigree index: %s\n", args[0])
			return
		}
		count, err := state.idx.PedigreePower(pedigreeIndex, args[1:])
		if err != nil {
			cliinternal.PrintError("error: %v\n", err)
			return
		}
		cliinternal.PrintInfo("power=%d\n", count)

	case "kinship", "phi":
		if len(args) < 2 {
			cliinternal.PrintError("usage: kinship <i> <j>\n")
			return
		}
		i, errI := strconv.Atoi(args[0])
		j, errJ := strconv.Atoi(args[1])
		if errI != nil || errJ != nil {
			cliinternal.PrintError("invalid sequence numbers\n")
			return
		}
		phi, delta7, found, err := state.idx.Kinship(i, j)
		if err != nil {
			cliinternal.PrintError("error: %v\n", err)
			return
		}
		if !found {
			cliinternal.PrintInfo("phi=0.0000000 delta7=0.0000000\n")
			return
		}
		cliinternal.PrintInfo("phi=%.7f delta7=%.7f\n", phi, delta7)

	default:
		cliinternal.PrintError("unknown command: %s\n", command)
		cliinternal.PrintInfo("Type 'help' for available commands\n")
	}
}

func printPedigreeRow(db *sql.DB, arg string) {
	pedigreeIndex, err := strconv.Atoi(arg)
	if err != nil {
		cliinternal.PrintError("invalid pedigree index: %s\n", arg)
		return
	}

	row := db.QueryRow(`
		SELECT founder_count, individual_count, family_count, has_loops, min_loop_breakers, inbred
		FROM pedigrees WHERE pedigree_index = ?
	`, pedigreeIndex)

	var founderCount, individualCount, familyCount, hasLoops, minLoopBreakers, inbred int
	if err := row.Scan(&founderCount, &individualCount, &familyCount, &hasLoops, &minLoopBreakers, &inbred); err != nil {
		if err == sql.ErrNoRows {
			cliinternal.PrintWarning("no such pedigree: %d\n", pedigreeIndex)
			return
		}
		cliinternal.PrintError("error: %v\n", err)
		return
	}

	cliinternal.PrintInfo("founders=%d individuals=%d families=%d loops=%v minBreakers=%d inbred=%v\n",
		founderCount, individualCount, familyCount, hasLoops == 1, minLoopBreakers, inbred == 1)
}

func completer(d prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: "help", Description: "Show help"},
		{Text: "exit", Description: "Exit interactive mode"},
		{Text: "individual", Description: "Look up one individual"},
		{Text: "pedigree", Description: "Show pedigree summary"},
		{Text: "power", Description: "Sum individuals over a pedigree, optionally filtered"},
		{Text: "kinship", Description: "Look up a kinship coefficient pair"},
	}
	return prompt.FilterHasPrefix(s, d.GetWordBeforeCursor(), true)
}

func printReplHelp() {
	cliinternal.PrintInfo("\nAvailable commands:\n")
	cliinternal.PrintInfo("  help, h                    Show this help\n")
	cliinternal.PrintInfo("  exit, quit, q              Exit interactive mode\n")
	cliinternal.PrintInfo("  individual <id>            Show an individual's ibdid/pedigree/generation\n")
	cliinternal.PrintInfo("  pedigree <index>           Show a pedigree's summary\n")
	cliinternal.PrintInfo("  power <index> [id...]      Count individuals in a pedigree, optionally filtered\n")
	cliinternal.PrintInfo("  kinship <i> <j>            Show phi/delta7 for a canonical-sequence pair\n\n")
}

// GetInteractiveCommand returns the interactive command.
func GetInteractiveCommand() *cobra.Command {
	return interactiveCmd
}
