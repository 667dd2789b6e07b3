// Package bed reads BED-like files of genomic regions and slices them
// by grid-engine array-task index.
package bed

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TaskEnv is the environment variable grid engine sets on each array
// job with that task's 1-based index
const TaskEnv = "SGE_TASK_ID"

// Region is one record of a BED file: a 0-based half-open interval
// on a chromosome, with an optional name (eg a gene symbol)
type Region struct {
	Chrom string
	Start int
	End   int
	Name  string
}

// Locus renders the region the way bcftools wants its -r argument:
// chrom:start-end with 1-based inclusive coordinates
func (r Region) Locus() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start+1, r.End)
}

// Label is the region's name if it has one, its locus otherwise.
// Used for naming per-region output files
func (r Region) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("%s_%d_%d", r.Chrom, r.Start+1, r.End)
}

// Read parses the regions out of a BED file. Comment, "track" and
// "browser" lines are skipped. Malformed records are errors, the
// caller is selecting lines by index and silent drops would shift them
func Read(path string) ([]Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var regions []Region
	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 3 {
			return nil, errors.Errorf("%s line %d: expected at least 3 BED fields, got %d", path, n, len(cols))
		}

		start, err := strconv.Atoi(cols[1])
		if err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad start", path, n)
		}
		end, err := strconv.Atoi(cols[2])
		if err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad end", path, n)
		}
		if start < 0 || end <= start {
			return nil, errors.Errorf("%s line %d: bad interval [%d, %d)", path, n, start, end)
		}

		region := Region{Chrom: cols[0], Start: start, End: end}
		if len(cols) > 3 {
			region.Name = strings.TrimSpace(cols[3])
		}
		regions = append(regions, region)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(regions) < 1 {
		return nil, errors.Errorf("no regions in %s", path)
	}
	return regions, nil
}

// Slice returns the single region an array task is responsible for.
// Task indexes are 1-based, the grid-engine convention
func Slice(regions []Region, task int) (Region, error) {
	if task < 1 || task > len(regions) {
		return Region{}, errors.Errorf("task index %d out of range, have %d regions", task, len(regions))
	}
	return regions[task-1], nil
}

// TaskIndex resolves the array-task index: the flag when set (> 0),
// SGE_TASK_ID otherwise. ok is false when neither names a task, ie
// when the run should cover every region
func TaskIndex(flag int) (task int, ok bool, err error) {
	if flag > 0 {
		return flag, true, nil
	}

	env := os.Getenv(TaskEnv)
	// grid engine sets the variable to "undefined" on non-array jobs
	if env == "" || env == "undefined" {
		return 0, false, nil
	}

	task, err = strconv.Atoi(env)
	if err != nil {
		return 0, false, errors.Wrapf(err, "bad %s", TaskEnv)
	}
	return task, true, nil
}
