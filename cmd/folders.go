package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/roobyn/sap-bi/pkg/biprws"
)

var foldersWebiOnly bool

var foldersCmd = &cobra.Command{
	Use:     "folders <folder-id>",
	Aliases: []string{"ls"},
	Short:   "List the direct children of an infostore folder",
	Long: `Lists the entries of a folder with their ids and type tags. Useful to
find the report and folder ids that 'scan' and 'report' expect. Only
direct children are listed; sub-folders are not descended into.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folderID := args[0]

		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		token, logoff, err := openSession(cmd.Context(), cli)
		if err != nil {
			return logError(err, "failed to log on")
		}
		defer logoff()

		entries, err := cli.Children(cmd.Context(), token, folderID)
		if err != nil {
			return logError(err, "failed to list folder "+folderID)
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Name", "Type"})
		for _, entry := range entries {
			if foldersWebiOnly && entry.Type != biprws.EntryTypeWebi {
				continue
			}
			name := entry.Name
			if entry.Type == biprws.EntryTypeWebi {
				name = bold(name)
			}
			t.AppendRow(table.Row{entry.ID, name, entry.Type})
		}
		applyTableFormat(t)
		t.Render()

		log.Debug().Msgf("folder %s has %d entries", folderID, len(entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(foldersCmd)

	foldersCmd.Flags().BoolVar(&foldersWebiOnly, "webi-only", false,
		"Only list Web Intelligence documents")

	f.bindAuthFlags(foldersCmd.Flags())
}
