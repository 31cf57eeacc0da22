package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <source>",
		Short: "Compile a source file to a binary artifact projects can reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			flags, _ := cmd.Flags().GetStringArray("flag")
			return c.app.Compile(cmd.Context(), args[0], output, flags)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output path for the compiled binary")
	cmd.Flags().StringArray("flag", nil, "Flag passed through to the external compiler (repeatable)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
