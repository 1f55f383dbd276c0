package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"freightline/internal/i18n"
	"freightline/internal/models/request_models"
	"freightline/internal/quote"
	v "freightline/internal/validation"
)

var renderQuoteCmd = &cobra.Command{
	Use:   "render-quote [answers.yaml]",
	Short: "Validate a quote answer file and print the email it would send",
	Long: `Runs the answers through the same wizard steps as the site and prints the
validation messages of each step, then the subject and HTML body of the email.
Reads standard input when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		catalog, err := i18n.Load("en")
		if err != nil {
			return err
		}
		return renderQuote(in, cmd.OutOrStdout(), catalog)
	},
}

func renderQuote(in io.Reader, out io.Writer, t i18n.Translator) error {
	var file request_models.QuoteAnswersFile
	if err := yaml.NewDecoder(in).Decode(&file); err != nil {
		return fmt.Errorf("parse answers: %w", err)
	}
	lang := file.Language
	if lang == "" {
		lang = "en"
	}

	for f := range file.Answers {
		if !quote.IsKnownField(f) {
			return fmt.Errorf("%s: %w", f, quote.ErrUnknownField)
		}
	}

	w := quote.New()
	if file.ServiceType != "" {
		if err := w.SelectServiceType(file.ServiceType); err != nil {
			return fmt.Errorf("%s: %w", v.FieldServiceType, err)
		}
	}
	for _, f := range quote.FieldOrder {
		val, ok := file.Answers[f]
		if !ok {
			continue
		}
		if err := w.SetAnswer(f, val); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}

	printErrs := func(title string, errs []v.FieldError) {
		fmt.Fprintf(out, "%s:\n", title)
		for _, fe := range errs {
			fmt.Fprintf(out, "  - %s: %s\n", t.T(lang, fe.Field), t.T(lang, fe.Key))
		}
	}

	for w.Step() < quote.MaxSteps {
		outcome, err := w.Advance()
		if err != nil {
			return err
		}
		switch outcome {
		case quote.OutcomeBlocked:
			printErrs(fmt.Sprintf("step %d is incomplete", w.Step()), w.Errors())
			return nil
		case quote.OutcomeNeedsConfirmation:
			printErrs("continuing despite", w.PendingDialog().Errors)
			if _, err := w.Confirm(); err != nil {
				return err
			}
		}
	}

	sub, err := w.BeginSubmission()
	if errors.Is(err, quote.ErrServiceTypeMissing) {
		fmt.Fprintf(out, "cannot submit: %s\n", t.T(lang, "serviceTypeRequired"))
		return nil
	}
	if err != nil {
		return err
	}
	body, err := sub.HTML(func(key string) string { return t.T(lang, key) })
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Subject: %s\n\n%s", sub.Subject(), body)
	return nil
}
