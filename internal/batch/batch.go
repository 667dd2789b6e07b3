// Package batch runs the per-region variant extraction step: one
// region per grid-engine array task, or every region locally with a
// bounded worker count.
package batch

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/keoughkath/ExcisionFinder/config"
	"github.com/keoughkath/ExcisionFinder/internal/bed"
	"github.com/keoughkath/ExcisionFinder/internal/variant"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// RegionsCmd prints the locus for the task's BED record, or every
// locus when no task index applies. It is the Go side of the array-job
// wrapper that used to slice the BED file with awk
func RegionsCmd(cmd *cobra.Command, args []string) {
	bedPath, err := cmd.Flags().GetString("bed")
	if bedPath == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno BED file path set")
	}
	taskFlag, _ := cmd.Flags().GetInt("task")

	regions, err := bed.Read(bedPath)
	if err != nil {
		stderr.Fatal(err)
	}

	task, ok, err := bed.TaskIndex(taskFlag)
	if err != nil {
		stderr.Fatal(err)
	}

	if ok {
		region, err := bed.Slice(regions, task)
		if err != nil {
			stderr.Fatal(err)
		}
		fmt.Println(region.Locus())
		return
	}

	for _, region := range regions {
		fmt.Println(region.Locus())
	}
}

// RunCmd extracts het calls for the task's region, or for every region
// in the BED file when run outside an array job
func RunCmd(cmd *cobra.Command, args []string) {
	bedPath, err := cmd.Flags().GetString("bed")
	if bedPath == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno BED file path set")
	}
	bcf, err := cmd.Flags().GetString("bcf")
	if bcf == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno BCF/VCF path set")
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = "."
	}
	taskFlag, _ := cmd.Flags().GetInt("task")

	conf := config.New()
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		conf.Extract.Workers = workers
	}

	extractor, err := NewExtractor(conf)
	if err != nil {
		stderr.Fatal(err)
	}
	if err := extractor.CheckVersion(); err != nil {
		stderr.Fatal(err)
	}

	regions, err := bed.Read(bedPath)
	if err != nil {
		stderr.Fatal(err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		stderr.Fatal(err)
	}

	samples, err := extractor.Samples(bcf)
	if err != nil {
		stderr.Fatal(err)
	}

	// the sample column order, for later targ runs against the raw bodies
	samplesPath := filepath.Join(outDir, "samples.txt")
	if err := os.WriteFile(samplesPath, []byte(strings.Join(samples, "\n")+"\n"), 0644); err != nil {
		stderr.Fatal(err)
	}

	task, ok, err := bed.TaskIndex(taskFlag)
	if err != nil {
		stderr.Fatal(err)
	}
	if ok {
		region, err := bed.Slice(regions, task)
		if err != nil {
			stderr.Fatal(err)
		}
		if err := extractRegion(extractor, region, bcf, outDir, conf.Extract.TmpDir, samples); err != nil {
			stderr.Fatal(err)
		}
		return
	}

	// no scheduler: fan out over the regions ourselves
	var group errgroup.Group
	group.SetLimit(conf.Extract.Workers)
	for _, region := range regions {
		region := region
		group.Go(func() error {
			return extractRegion(extractor, region, bcf, outDir, conf.Extract.TmpDir, samples)
		})
	}
	if err := group.Wait(); err != nil {
		stderr.Fatal(err)
	}
}

// extractRegion pulls one region's het calls and writes both the raw
// genotype body and a per-variant summary under outDir. The raw body is
// staged in tmpDir first so a failed task never leaves a partial
// .gens.tsv where merge or targ would read it
func extractRegion(e *Extractor, region bed.Region, bcf, outDir, tmpDir string, samples []string) error {
	body, err := e.ViewHets(region.Locus(), bcf)
	if err != nil {
		return err
	}

	label := TranslateName(region.Label())
	gensPath := filepath.Join(outDir, label+".gens.tsv")
	if err := stageWrite(tmpDir, gensPath, body); err != nil {
		return err
	}

	table, err := variant.ParseView(bytes.NewReader(body), samples)
	if err != nil {
		return err
	}

	return writeSummary(filepath.Join(outDir, label+".tsv"), table)
}

// stageWrite writes body to a scratch file under tmpDir and moves it to
// dest once complete
func stageWrite(tmpDir, dest string, body []byte) error {
	tmp, err := os.CreateTemp(tmpDir, filepath.Base(dest)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), dest); err == nil {
		return nil
	}
	// tmp-dir on another filesystem, fall back to a copy
	return os.WriteFile(dest, body, 0644)
}

// writeSummary writes the per-variant het counts for a region
func writeSummary(path string, table variant.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "chrom\tpos\tref\talt\tn_het"); err != nil {
		return err
	}
	for _, v := range table.Variants {
		if _, err := fmt.Fprintf(f, "%s\t%d\t%s\t%s\t%d\n", v.Chrom, v.Pos, v.Ref, v.Alt, v.NHet()); err != nil {
			return err
		}
	}
	return nil
}

// MergeCmd concatenates the per-region summary tables from a batch
// output directory into a single table
func MergeCmd(cmd *cobra.Command, args []string) {
	dir, err := cmd.Flags().GetString("dir")
	if dir == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno batch output directory set")
	}
	out, err := cmd.Flags().GetString("out")
	if out == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno output path set")
	}

	if err := Merge(dir, out); err != nil {
		stderr.Fatal(err)
	}
}

// Merge writes the region summaries under dir to a single table at
// out: the header once, then every region's rows in file-name order
func Merge(dir, out string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.tsv"))
	if err != nil {
		return err
	}

	// the output may live in dir itself, compare resolved paths
	outAbs, err := filepath.Abs(out)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	merged := 0
	for _, path := range paths { // Glob output is sorted
		pathAbs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, ".gens.tsv") || pathAbs == outAbs {
			continue
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		lines := strings.SplitN(string(body), "\n", 2)
		if merged == 0 {
			if _, err := fmt.Fprintln(f, lines[0]); err != nil {
				return err
			}
		}
		if len(lines) > 1 {
			if _, err := f.WriteString(lines[1]); err != nil {
				return err
			}
		}
		merged++
	}

	if merged == 0 {
		return fmt.Errorf("no region summaries in %s", dir)
	}
	return nil
}

// TranslateName swaps the punctuation that downstream tools choke on
// out of a gene name ("-" and "." in HDF5 keys, historically)
func TranslateName(name string) string {
	name = strings.ReplaceAll(name, "-", "dash")
	return strings.ReplaceAll(name, ".", "period")
}
