package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/yellowpad/internal/config"
	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/dgallion1/yellowpad/internal/instruction"
	"github.com/dgallion1/yellowpad/internal/pipeline"
	"github.com/dgallion1/yellowpad/internal/render"
)

var errBatchFailed = errors.New("not every job resolved; no document written")

// jobEntry is one entry of a jobs file.
type jobEntry struct {
	Clause      string `yaml:"clause"`
	Instruction string `yaml:"instruction"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yellowpad",
		Short:         "Insert clauses into contracts by section reference",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newOutlineCmd(), newResolveCmd(), newInsertCmd())
	return root
}

func newOutlineCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "Print the section outline recovered from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			return printOutline(cmd.OutOrStdout(), doc, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func newResolveCmd() *cobra.Command {
	var instr string
	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Show where an instruction would place a clause",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			res, err := instruction.Resolve(doc.Sections, instr)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "insertion point: %d of %d\n", res.InsertionPoint, len(doc.Sections))
			fmt.Fprintf(out, "section number:  %s\n", res.SectionNumber)
			return nil
		},
	}
	cmd.Flags().StringVarP(&instr, "instruction", "i", "", `placement, e.g. "after section 4.1"`)
	cmd.MarkFlagRequired("instruction")
	return cmd
}

func newInsertCmd() *cobra.Command {
	var jobsPath, outPath string
	cmd := &cobra.Command{
		Use:   "insert <file>",
		Short: "Insert every clause in a jobs file and write the new .docx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			jobs, err := readJobs(jobsPath)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = filepath.Join(filepath.Dir(args[0]), pipeline.ProcessedFilename(filepath.Base(args[0])))
			}
			return insert(cmd.OutOrStdout(), doc, jobs, outPath)
		},
	}
	cmd.Flags().StringVarP(&jobsPath, "jobs", "j", "", "YAML file with a list of {clause, instruction}")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output .docx path (default processed_<name>.docx)")
	cmd.MarkFlagRequired("jobs")
	return cmd
}

// loadDocument parses the file at path with the same configuration and
// steps as an upload to the server.
func loadDocument(path string) (document.Document, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return document.Document{}, fmt.Errorf("invalid configuration: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Document{}, err
	}
	doc, _, err := pipeline.ParseDocument(cfg, filepath.Base(path), data)
	return doc, err
}

func readJobs(path string) ([]document.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []jobEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse jobs file %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("jobs file %s: %w", path, pipeline.ErrNoJobs)
	}
	jobs := make([]document.Job, 0, len(entries))
	for i, e := range entries {
		if e.Clause == "" || e.Instruction == "" {
			return nil, fmt.Errorf("jobs file %s: entry %d needs clause and instruction", path, i+1)
		}
		jobs = append(jobs, document.NewJob(fmt.Sprintf("job-%d", i+1), e.Clause, e.Instruction))
	}
	return jobs, nil
}

func printOutline(w io.Writer, doc document.Document, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	fmt.Fprintf(w, "%s (%s, %d sections)\n", doc.Filename, doc.DocumentType, doc.TotalSections)
	for _, s := range doc.Sections {
		fmt.Fprintf(w, "%3d  %*s%s. %s\n", s.Position, 2*(s.Level-1), "", s.Number, s.Title)
	}
	return nil
}

// insert runs the batch and writes outPath only when every job resolved.
func insert(w io.Writer, doc document.Document, jobs []document.Job, outPath string) error {
	res := pipeline.RunBatch(doc, jobs)
	for _, j := range res.Jobs {
		fmt.Fprintf(w, "%-8s %-7s %s\n", j.ID, j.Status, j.Message)
	}
	if !res.Assembled() {
		return errBatchFailed
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if _, err := render.WriteDOCX(f, res.Blocks); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s (%d blocks)\n", outPath, len(res.Blocks))
	return nil
}
