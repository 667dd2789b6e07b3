package cas

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/keoughkath/ExcisionFinder/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Registry holds the known Cas enzymes, in table order
type Registry struct {
	enzymes []Enzyme

	// path the registry was loaded from, "" when using the built-in table
	path string
}

// NewRegistry loads the Cas registry: the user's edited copy if one
// exists, a file set via cas-registry otherwise, the built-in table
// as the fallback
func NewRegistry() *Registry {
	path := ""
	if override := os.Getenv("EXCISIONFINDER_CAS_REGISTRY"); override != "" {
		path = override
	} else if fromConf := viper.GetString("cas-registry"); fromConf != "" {
		path = fromConf
	} else if _, err := os.Stat(config.CasDB); err == nil {
		path = config.CasDB
	}

	if path == "" {
		enzymes, err := Parse(strings.NewReader(builtinTable))
		if err != nil {
			stderr.Fatalf("failed to parse built-in cas registry: %v", err)
		}
		return &Registry{enzymes: enzymes}
	}

	f, err := os.Open(path)
	if err != nil {
		stderr.Fatal(err)
	}
	defer f.Close()

	enzymes, err := Parse(f)
	if err != nil {
		stderr.Fatalf("failed to parse cas registry at %s: %v", path, err)
	}

	return &Registry{enzymes: enzymes, path: path}
}

// Enzymes returns the registry's records in table order
func (db *Registry) Enzymes() []Enzyme {
	return db.enzymes
}

// Find returns the enzyme with the exact name requested
func (db *Registry) Find(name string) (Enzyme, bool) {
	for _, enz := range db.enzymes {
		if enz.Name == name {
			return enz, true
		}
	}
	return Enzyme{}, false
}

// Subset returns the enzymes in a comma separated list of names,
// or every enzyme when the list is empty or "all"
func (db *Registry) Subset(list string) ([]Enzyme, error) {
	list = strings.TrimSpace(list)
	if list == "" || list == "all" {
		return db.enzymes, nil
	}

	var enzymes []Enzyme
	for _, name := range strings.Split(list, ",") {
		enz, ok := db.Find(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown cas variety %s, see 'excisionfinder find cas'", name)
		}
		enzymes = append(enzymes, enz)
	}
	return enzymes, nil
}

// FindCmd logs enzymes similar in name to the one requested.
// Without an argument, every enzyme is logged
func (db *Registry) FindCmd(cmd *cobra.Command, args []string) {
	// from https://golang.org/pkg/text/tabwriter/
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)

	matches := db.enzymes
	if len(args) > 0 {
		query := strings.ToUpper(args[0])
		matches = nil
		for _, enz := range db.enzymes {
			if strings.Contains(strings.ToUpper(enz.Name), query) {
				matches = append(matches, enz)
			}
		}

		if len(matches) < 1 {
			stderr.Fatalf("failed to find any enzymes for %s", args[0])
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	for _, enz := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\n", enz.Name, enz.PAM, enz.Side)
	}
	w.Flush()
}

// SetCmd creates or updates an enzyme in the user's registry copy
func (db *Registry) SetCmd(cmd *cobra.Command, args []string) {
	if len(args) < 3 {
		cmd.Help()
		stderr.Fatal("\nexpecting a name, PAM and side (5' or 3')")
	}

	name := args[0]
	pam := strings.ToUpper(args[1])
	if err := ValidPattern(pam); err != nil {
		stderr.Fatal(err)
	}
	side, err := ParseSide(args[2])
	if err != nil {
		stderr.Fatal(err)
	}

	updated := Enzyme{Name: name, PAM: pam, Side: side}
	set := false
	for i, enz := range db.enzymes {
		if enz.Name == name {
			db.enzymes[i] = updated
			set = true
			break
		}
	}
	if !set {
		// new enzymes go at the end of the table
		db.enzymes = append(db.enzymes, updated)
	}

	if err := db.save(); err != nil {
		stderr.Fatal(err)
	}
	fmt.Printf("set %s\t%s\t%s\n", updated.Name, updated.PAM, updated.Side)
}

// DeleteCmd removes an enzyme from the user's registry copy
func (db *Registry) DeleteCmd(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		cmd.Help()
		stderr.Fatal("\nexpecting an enzyme name")
	}

	name := args[0]
	for i, enz := range db.enzymes {
		if enz.Name == name {
			db.enzymes = append(db.enzymes[:i], db.enzymes[i+1:]...)

			if err := db.save(); err != nil {
				stderr.Fatal(err)
			}
			fmt.Printf("deleted %s\n", name)
			return
		}
	}

	stderr.Fatalf("failed to find %s in the cas registry", name)
}

// save writes the registry to the user's copy at config.CasDB
func (db *Registry) save() error {
	if err := os.MkdirAll(filepath.Dir(config.CasDB), 0755); err != nil {
		return err
	}

	f, err := os.Create(config.CasDB)
	if err != nil {
		return err
	}
	defer f.Close()

	return Write(f, db.enzymes)
}
