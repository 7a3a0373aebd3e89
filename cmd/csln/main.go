package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csln/csln/pkg/assemble"
	"github.com/csln/csln/pkg/clsnerr"
	"github.com/csln/csln/pkg/disambiguate"
	"github.com/csln/csln/pkg/format"
	"github.com/csln/csln/pkg/locale"
	"github.com/csln/csln/pkg/migrate"
	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/resolve"
	"github.com/csln/csln/pkg/sorting"
	"github.com/csln/csln/pkg/style"
	"github.com/csln/csln/pkg/template"
	"gopkg.in/yaml.v3"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "csln",
		Short: "CSLN citation engine command-line harness",
		Long: `csln is the development harness for the CSLN citation engine.

It renders citations and bibliographies from a style and a bibliography
file, migrates legacy CSL 1.0 XML styles into CSLN's declarative YAML
form, validates a style against the engine's structural rules, and
emits the JSON Schema for the style and reference document shapes.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(schemaCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error onto the three-value exit-code contract:
// 0 success, 1 user error (parse/validation), 2 internal error.
func exitCodeFor(err error) int {
	e, ok := err.(*clsnerr.Error)
	if !ok {
		return 2
	}
	switch e.Kind {
	case clsnerr.KindParseError, clsnerr.KindValidationError, clsnerr.KindMigrationFatal, clsnerr.KindUnknownReference:
		return 1
	default:
		return 2
	}
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render citations or a bibliography from a style and references",
	}
	cmd.AddCommand(renderRefsCmd())
	return cmd
}

func renderRefsCmd() *cobra.Command {
	var bibPath, stylePath, formatName, localeDir string
	cmd := &cobra.Command{
		Use:   "refs",
		Short: "Render every reference in a bibliography as bibliography entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bibPath == "" || stylePath == "" {
				return &clsnerr.Error{Kind: clsnerr.KindParseError, Message: "both -b/--bib and -s/--style are required"}
			}
			return runRenderRefs(cmd, bibPath, stylePath, formatName, localeDir)
		},
	}
	cmd.Flags().StringVarP(&bibPath, "bib", "b", "", "bibliography file (YAML, JSON, or CSL-JSON)")
	cmd.Flags().StringVarP(&stylePath, "style", "s", "", "style file (YAML or JSON)")
	cmd.Flags().StringVar(&formatName, "format", "plain", "output format: plain, html, latex, or djot")
	cmd.Flags().StringVar(&localeDir, "locale-dir", "", "directory of locale YAML files to load, keyed by BCP-47 tag")
	return cmd
}

func runRenderRefs(cmd *cobra.Command, bibPath, stylePath, formatName, localeDir string) error {
	st, err := loadStyle(stylePath)
	if err != nil {
		return err
	}
	bib, err := loadBibliography(bibPath)
	if err != nil {
		return err
	}
	loc, err := resolveLocale(st, localeDir)
	if err != nil {
		return err
	}

	refs := bib.All()
	cited := func(ref *reference.Reference) bool { return true }

	groups := sorting.GroupReferences(refs, st.Bibliography.Groups, cited)
	for i := range groups {
		sorter := sorting.NewSorter(loc.Tag, sortField(loc.Tag))
		sortKeys := groups[i].Spec.SortKeys
		if len(sortKeys) == 0 {
			sortKeys = st.Bibliography.SortKeys
		}
		sorter.Sort(groups[i].Refs, sortKeys)
	}

	// Disambiguation must run against the same order the bibliography
	// actually renders in (the resolved group/sort order), not source
	// order, or year suffixes bind to the wrong entries (§4.7 step 4).
	var ordered []*reference.Reference
	for _, group := range groups {
		ordered = append(ordered, group.Refs...)
	}

	keyFn := func(ref *reference.Reference, nameCount, givenNameLevel int) string {
		return disambiguationKey(ref, nameCount, givenNameLevel, loc.Tag)
	}
	bibOpts := st.EffectiveBibliographyOptions()
	addNames := bibOpts.Contributors.DisambiguateAddNames
	addGivenname := bibOpts.Contributors.DisambiguateAddGivenname
	hints := disambiguate.Compute(ordered, keyFn, addNames, addGivenname)
	hints.SubstitutedBase = disambiguate.ComputeSubsequentAuthorSubstitute(ordered, func(ref *reference.Reference) string {
		return authorSubstituteKey(ref, loc.Tag)
	})

	renderers := format.Default(loc.PunctuationInQuote)
	renderer, ok := renderers.Get(formatName)
	if !ok {
		return &clsnerr.Error{Kind: clsnerr.KindParseError, Message: "unknown output format", Field: "format", Accepted: renderers.List()}
	}

	opts := bibOpts
	interp := template.NewInterpreter(resolve.NewContext(bib, loc, opts))
	interp.Hints = hints
	numbers := assemble.NumberReferences(bib)
	for _, group := range groups {
		for _, ref := range group.Refs {
			tpl := st.Bibliography.TemplateFor(ref.Type)
			interp.Resolver.Reset()
			runs := interp.RenderTemplate(ref, tpl, opts, "", false)
			if suffix := hints.YearSuffix[ref.ID]; suffix != "" {
				runs = append(runs, template.Run{Text: suffix})
			}
			rendered := renderer.Render(runs)
			if opts.Processing == style.ProcessingNumeric {
				rendered = fmt.Sprintf("[%d] %s", numbers[ref.ID], rendered)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
		}
	}
	return nil
}

// authorSubstituteKey renders the comparison key used to detect
// repeated author blocks for the subsequent-author-substitute feature
// (§4.7 step 5): the ordered list of author family+given names, or the
// literal name for organizational authors. An empty result (no authors)
// never matches, so such entries are never substituted.
func authorSubstituteKey(ref *reference.Reference, localeLang string) string {
	contributors := ref.ContributorsFor("author")
	if len(contributors) == 0 {
		return ""
	}
	var parts []string
	for _, c := range contributors {
		name, isLiteral := c.StructuredForm(reference.ModePrimary, localeLang)
		if isLiteral {
			parts = append(parts, c.Literal)
			continue
		}
		parts = append(parts, name.Family.Resolve(reference.ModePrimary, localeLang)+"|"+name.Given.Resolve(reference.ModePrimary, localeLang))
	}
	return strings.Join(parts, ";")
}

func disambiguationKey(ref *reference.Reference, nameCount, givenNameLevel int, localeLang string) string {
	var parts []string
	contributors := ref.ContributorsFor("author")
	for i, c := range contributors {
		if i >= nameCount {
			break
		}
		name, isLiteral := c.StructuredForm(reference.ModePrimary, localeLang)
		if isLiteral {
			parts = append(parts, c.Literal)
			continue
		}
		given := name.Given.Resolve(reference.ModePrimary, localeLang)
		if givenNameLevel == 0 {
			if runes := []rune(given); len(runes) > 0 {
				given = string(runes[0])
			}
		}
		parts = append(parts, name.Family.Resolve(reference.ModePrimary, localeLang)+","+given)
	}
	if d, ok := ref.Date("issued"); ok && !d.IsRange {
		parts = append(parts, fmt.Sprintf("%d", d.Single.Year))
	}
	return strings.Join(parts, "|")
}

func sortField(localeLang string) sorting.FieldFunc {
	return func(ref *reference.Reference, key style.SortKey) (string, bool) {
		if key.Names != "" {
			return sorting.NameSortKey(ref, key.Names, reference.ModePrimary, localeLang)
		}
		if key.Variable != "" {
			v, ok := ref.Variable(key.Variable)
			if !ok {
				return "", false
			}
			return v.Resolve(reference.ModePrimary, localeLang), true
		}
		return "", false
	}
}

func migrateCmd() *cobra.Command {
	var samplesPath, cacheDir string
	cmd := &cobra.Command{
		Use:   "migrate <style.csl>",
		Short: "Compile a legacy CSL 1.0 XML style into a CSLN style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, args[0], samplesPath, cacheDir)
		},
	}
	cmd.Flags().StringVar(&samplesPath, "samples", "", "YAML file of rendered output samples used for output-driven template inference")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "templates", "directory under which templates/inferred/ is written")
	return cmd
}

func runMigrate(cmd *cobra.Command, stylePath, samplesPath, cacheDir string) error {
	doc, err := os.ReadFile(stylePath)
	if err != nil {
		return &clsnerr.Error{Kind: clsnerr.KindParseError, Message: "reading legacy style file", Path: stylePath, Err: err}
	}
	styleName := strings.TrimSuffix(filepath.Base(stylePath), filepath.Ext(stylePath))

	var samples []migrate.Sample
	if samplesPath != "" {
		samples, err = loadSamples(samplesPath)
		if err != nil {
			return err
		}
	}

	result, err := migrate.Migrate(doc, styleName, cacheDir, samples)
	if err != nil {
		return err
	}
	for _, entry := range result.Report.Entries {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", entry)
	}

	out, err := yaml.Marshal(result.Style)
	if err != nil {
		return &clsnerr.Error{Kind: clsnerr.KindValidationError, Message: "marshaling migrated style", Err: err}
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func loadSamples(path string) ([]migrate.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &clsnerr.Error{Kind: clsnerr.KindParseError, Message: "reading samples file", Path: path, Err: err}
	}
	var raw []struct {
		Reference *reference.Reference `yaml:"reference"`
		Rendered  string                `yaml:"rendered"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &clsnerr.Error{Kind: clsnerr.KindParseError, Message: "parsing samples file", Path: path, Err: err}
	}
	samples := make([]migrate.Sample, 0, len(raw))
	for _, r := range raw {
		samples = append(samples, migrate.Sample{Reference: r.Reference, Rendered: r.Rendered})
	}
	return samples, nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <style>",
		Short: "Validate a CSLN style file against the engine's structural rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStyle(args[0])
			if err != nil {
				return err
			}
			if err := migrate.Validate(st); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "style is valid")
			return nil
		},
	}
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema style|reference",
		Short:     "Emit the JSON Schema for a style or reference document",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"style", "reference"},
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := migrate.Schema(args[0])
			if err != nil {
				return &clsnerr.Error{Kind: clsnerr.KindParseError, Message: err.Error(), Field: "kind", Accepted: []string{"style", "reference"}}
			}
			data, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return &clsnerr.Error{Kind: clsnerr.KindValidationError, Message: "marshaling schema", Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func loadStyle(path string) (style.Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return style.Style{}, &clsnerr.Error{Kind: clsnerr.KindParseError, Message: "reading style file", Path: path, Err: err}
	}
	var st style.Style
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&st); err != nil {
		return style.Style{}, &clsnerr.Error{Kind: clsnerr.KindParseError, Message: "parsing style file (unknown or malformed fields are rejected)", Path: path, Err: err}
	}
	return st, nil
}

func loadBibliography(path string) (*reference.Bibliography, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &clsnerr.Error{Kind: clsnerr.KindParseError, Message: "reading bibliography file", Path: path, Err: err}
	}
	if looksLikeCSLJSON(data) {
		return reference.DecodeCSLJSON(data)
	}
	return reference.DecodeBibliographyYAML(data)
}

func looksLikeCSLJSON(data []byte) bool {
	trimmed := strings.TrimSpace(string(data))
	return strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{")
}

func resolveLocale(st style.Style, localeDir string) (*locale.Locale, error) {
	base := locale.BuiltinEnUS()
	if st.DefaultLocale == "" && localeDir == "" {
		return base, nil
	}
	tag := st.DefaultLocale
	if tag == "" {
		tag = base.Tag
	}
	if localeDir != "" {
		data, err := os.ReadFile(filepath.Join(localeDir, tag+".yaml"))
		if err == nil {
			var l locale.Locale
			if err := yaml.Unmarshal(data, &l); err != nil {
				return nil, &clsnerr.Error{Kind: clsnerr.KindParseError, Message: "parsing locale file", Path: localeDir, Err: err}
			}
			return &l, nil
		}
	}
	return base, nil
}
