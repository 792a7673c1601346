package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/obsmith/semvault/internal/model"
)

var markParent string

// markCmd represents the mark command
var markCmd = &cobra.Command{
	Use:   "mark <kind> <label>",
	Short: "Mint a new tag marker",
	Long: `Mark prints a freshly minted marker with a new UUID, ready to paste into
a note. A kind written as Custom:Name carries a subkind.

Example:
  semvault mark Axiom "First Cause"
  semvault mark Custom:Postulate "Continuity of Observation" --parent 2f1c...`,
	Args: cobra.ExactArgs(2),
	RunE: runMark,
}

func init() {
	rootCmd.AddCommand(markCmd)

	markCmd.Flags().StringVar(&markParent, "parent", "", "parent record id")
}

func runMark(cmd *cobra.Command, args []string) error {
	kind, label := args[0], args[1]
	if kind == "" || label == "" {
		return fmt.Errorf("kind and label must be non-empty")
	}
	if strings.Contains(label, `"`) {
		return fmt.Errorf("label must not contain double quotes")
	}

	rec := model.SemanticRecord{
		Kind:     kind,
		ID:       uuid.NewString(),
		Label:    label,
		ParentID: markParent,
	}
	// A colon in the kind means Custom:Subkind, matching how the extractor
	// decodes it.
	if _, sub, ok := strings.Cut(kind, ":"); ok {
		rec.Kind = model.KindCustom
		rec.Subkind = strings.TrimSpace(sub)
	}

	fmt.Println(rec.Marker())
	return nil
}
