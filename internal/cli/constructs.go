package cli

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdmark/internal/configloader"
	"github.com/yaklabco/gomdmark/internal/logging"
	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/markdown"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

const formatJSON = "json"

// constructInfo represents a construct in JSON output.
type constructInfo struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Groups  []string `json:"groups,omitempty"`
}

func newConstructsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "constructs",
		Short: "List the constructs that can be disabled",
		Long: `List every grammar construct with the aliases and groups that select it
under "disable" in configuration or the --disable flag.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := listConstructs()

			if format == formatJSON {
				enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding constructs: %w", err)
				}
				return nil
			}

			logger := logging.NewInteractive()
			logger.Info("available constructs")
			for _, info := range infos {
				keyvals := make([]any, 0, 4)
				if len(info.Aliases) > 0 {
					keyvals = append(keyvals, "aliases", strings.Join(info.Aliases, ", "))
				}
				if len(info.Groups) > 0 {
					keyvals = append(keyvals, "groups", strings.Join(info.Groups, ", "))
				}
				logger.Info(info.Name, keyvals...)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// listConstructs describes every construct of the default grammar plus the
// built-in marks.
func listConstructs() []constructInfo {
	groups := make(map[string][]string)
	for _, group := range configloader.GroupNames() {
		for _, name := range configloader.GetGroupConstructs(group) {
			groups[name] = append(groups[name], group)
		}
	}

	names := micromark.ConstructNames(markExtensions()...)
	infos := make([]constructInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, constructInfo{
			Name:    name,
			Aliases: configloader.GetAliasesForConstruct(name),
			Groups:  groups[name],
		})
	}
	return infos
}

func markExtensions() []micromark.Extension {
	exts := make([]micromark.Extension, 0, len(config.KnownExtensions()))
	for _, name := range config.KnownExtensions() {
		if ext, err := markdown.MarkExtension(name); err == nil {
			exts = append(exts, ext)
		}
	}
	return exts
}
