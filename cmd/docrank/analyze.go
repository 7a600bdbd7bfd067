package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/nlp"
	"github.com/dgallion1/docrank/internal/output"
	"github.com/dgallion1/docrank/internal/pipeline"
)

// requestFileName optionally sits in the input directory and overrides the
// persona and job text files.
const requestFileName = "request.yaml"

// requestFile is the shape of request.yaml.
type requestFile struct {
	Persona     string `yaml:"persona"`
	JobToBeDone string `yaml:"job_to_be_done"`
}

var (
	personaFlag string
	jobFlag     string
	quietFlag   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank sections of the documents in an input directory",
	Long: `Analyze reads every document in the input directory (PDF by default),
ranks their sections for the persona and job, and writes the JSON result.

The persona and job come from persona.txt and job.txt in the input directory,
then request.yaml if present, then --persona and --job.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringP("input", "i", "input", "input directory")
	f.StringP("output", "o", "output/analysis.json", "output JSON file")
	f.StringSlice("extensions", []string{".pdf"}, "file extensions to analyze")
	f.Int("top", 15, "sections to emit")
	f.Bool("validate-pdf", false, "check PDF structure before extraction")
	f.StringVar(&personaFlag, "persona", "", "persona text (overrides persona.txt and request.yaml)")
	f.StringVar(&jobFlag, "job", "", "job to be done (overrides job.txt and request.yaml)")
	f.BoolVarP(&quietFlag, "quiet", "q", false, "skip the console summary")

	_ = v.BindPFlag(config.KeyInputDir, f.Lookup("input"))
	_ = v.BindPFlag(config.KeyOutputFile, f.Lookup("output"))
	_ = v.BindPFlag(config.KeyExtensions, f.Lookup("extensions"))
	_ = v.BindPFlag(config.KeyTopSections, f.Lookup("top"))
	_ = v.BindPFlag(config.KeyPDFValidate, f.Lookup("validate-pdf"))

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log := newLogger(cfg, cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	inputs, err := pipeline.Discover(cfg.InputDir, cfg.Extensions, cfg.PersonaFile, cfg.JobFile, requestFileName)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		log.Warn("No PDF files found in input directory", "input_dir", cfg.InputDir)
		fmt.Fprintln(out, "No PDF files found in input directory")
		return nil
	}

	req, err := buildRequest(cfg, inputs)
	if err != nil {
		return err
	}

	tk, err := nlp.New()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Processing %d documents...\n", len(inputs))
	analyzer := pipeline.NewAnalyzer(tk, log, pipeline.OptionsFromConfig(cfg), nil)
	res, sum, err := analyzer.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	if err := output.WriteFile(cfg.OutputFile, res); err != nil {
		return err
	}
	fmt.Fprintf(out, "Analysis complete. Results saved to %s\n", cfg.OutputFile)

	if !quietFlag {
		fmt.Fprintln(out, renderSummary(sum, analyzer.Stats().Snapshot()))
	}
	return nil
}

// buildRequest resolves persona and job text. Later sources win: config
// defaults, persona.txt/job.txt, request.yaml, then flags.
func buildRequest(cfg config.Config, inputs []pipeline.Input) (pipeline.Request, error) {
	persona, err := pipeline.ReadTextOr(filepath.Join(cfg.InputDir, cfg.PersonaFile), cfg.DefaultPersona)
	if err != nil {
		return pipeline.Request{}, err
	}
	job, err := pipeline.ReadTextOr(filepath.Join(cfg.InputDir, cfg.JobFile), cfg.DefaultJob)
	if err != nil {
		return pipeline.Request{}, err
	}

	rf, err := loadRequestFile(filepath.Join(cfg.InputDir, requestFileName))
	if err != nil {
		return pipeline.Request{}, err
	}
	if rf.Persona != "" {
		persona = rf.Persona
	}
	if rf.JobToBeDone != "" {
		job = rf.JobToBeDone
	}

	if s := strings.TrimSpace(personaFlag); s != "" {
		persona = s
	}
	if s := strings.TrimSpace(jobFlag); s != "" {
		job = s
	}

	return pipeline.Request{Inputs: inputs, Persona: persona, Job: job}, nil
}

// loadRequestFile reads request.yaml. A missing file yields a zero value.
func loadRequestFile(path string) (requestFile, error) {
	var rf requestFile
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return rf, nil
	}
	if err != nil {
		return rf, fmt.Errorf("read %s: %w", requestFileName, err)
	}
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return rf, fmt.Errorf("parse %s: %w", requestFileName, err)
	}
	rf.Persona = strings.TrimSpace(rf.Persona)
	rf.JobToBeDone = strings.TrimSpace(rf.JobToBeDone)
	return rf, nil
}
