package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kalilinux212222/pass-gene/internal/export"
	"github.com/Kalilinux212222/pass-gene/internal/model"
	"github.com/Kalilinux212222/pass-gene/internal/report"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a password",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	addGenerateFlags(cmd)
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	s, err := openSession("")
	if err != nil {
		return err
	}
	defer s.Close()
	defer printNotice(cmd, s)

	cfg, err := generationConfig(cmd, s.file)
	if err != nil {
		return err
	}
	gen, err := s.engine.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}
	p := report.NewPrinter(cmd.OutOrStdout())
	return printLines(cmd.OutOrStdout(), p.Generation(gen))
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <password>",
		Short: "Check whether a password was generated",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerifyCmd,
	}
}

func runVerifyCmd(cmd *cobra.Command, args []string) error {
	s, err := openSession("")
	if err != nil {
		return err
	}
	defer s.Close()
	defer printNotice(cmd, s)

	p := report.NewPrinter(cmd.OutOrStdout())
	return printLines(cmd.OutOrStdout(), p.Original(s.engine.VerifyOriginal(args[0])))
}

func newVerifyEncryptedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-encrypted <encrypted>",
		Short: "Check an encrypted password against the current one",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerifyEncryptedCmd,
	}
	cmd.Flags().StringVar(&verifyPlain, "plain", "", "original password to compare with the decrypted current password")
	return cmd
}

func runVerifyEncryptedCmd(cmd *cobra.Command, args []string) error {
	s, err := openSession("")
	if err != nil {
		return err
	}
	defer s.Close()
	defer printNotice(cmd, s)

	var plain *string
	if cmd.Flags().Changed("plain") {
		plain = &verifyPlain
	}
	p := report.NewPrinter(cmd.OutOrStdout())
	lines := p.Encrypted(s.engine.VerifyEncrypted(args[0], plain))
	if plain != nil {
		lines = append(p.Original(s.engine.VerifyOriginal(*plain)), lines...)
	}
	return printLines(cmd.OutOrStdout(), lines)
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Import newline-delimited passwords",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	s, err := openSession("")
	if err != nil {
		return err
	}
	defer s.Close()
	defer printNotice(cmd, s)

	ctx := context.Background()
	p := report.NewPrinter(cmd.OutOrStdout())
	var summary model.ImportSummary
	if args[0] == "-" {
		summary, err = s.engine.ImportReader(ctx, cmd.InOrStdin())
	} else {
		summary, err = s.engine.ImportFile(ctx, args[0])
	}
	if err != nil {
		return err
	}
	return printLines(cmd.OutOrStdout(), p.Import(summary))
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current password and history",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportDir, "dir", ".", "output directory")
	cmd.Flags().BoolVar(&exportOut, "stdout", false, "print instead of writing "+export.FileName)
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	s, err := openSession("")
	if err != nil {
		return err
	}
	defer s.Close()
	defer printNotice(cmd, s)

	if exportOut {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), s.engine.ExportSnapshot()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	path, err := export.WriteFile(exportDir, s.engine.Snapshot())
	if err != nil {
		return err
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List generated passwords",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	s, err := openSession("")
	if err != nil {
		return err
	}
	defer s.Close()
	defer printNotice(cmd, s)

	snap := s.engine.Snapshot()
	if len(snap.History) == 0 {
		logErrf("No passwords generated yet. Run: passgene generate\n")
		return nil
	}
	return printLines(cmd.OutOrStdout(), report.HistoryTable(snap.History))
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear history, the current password and imports",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	s, err := openSession("")
	if err != nil {
		return err
	}
	defer s.Close()
	defer printNotice(cmd, s)

	s.engine.Reset(context.Background())
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "History cleared"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func printNotice(cmd *cobra.Command, s *session) {
	if err := s.engine.TakeNotice(); err != nil {
		w := cmd.ErrOrStderr()
		if _, werr := fmt.Fprintln(w, report.NewPrinter(w).Notice(err)); werr != nil {
			// Best-effort warning output.
			_ = werr
		}
	}
}
