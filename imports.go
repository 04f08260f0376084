package kotlinpoet

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Import is an import directive in a Kotlin file. Alias is empty for a plain
// import.
type Import struct {
	QualifiedName string
	Alias         string
}

// String returns the import as it appears after the import keyword, for
// example:
//
//	com.example.Widget
//	com.other.Widget as OtherWidget
func (i Import) String() string {
	if i.Alias == "" {
		return escapeSegmentsIfNecessary(i.QualifiedName)
	}
	return escapeSegmentsIfNecessary(i.QualifiedName) + " as " + escapeIfNecessary(i.Alias)
}

func (i Import) packageName() string {
	if dot := strings.LastIndexByte(i.QualifiedName, '.'); dot >= 0 {
		return i.QualifiedName[:dot]
	}
	return ""
}

// importCandidates is what a collecting pass learns about a file.
type importCandidates struct {
	// types and members that could be imported, keyed by the simple name
	// (or explicit alias) they would be referenced by, in order of first use.
	types   map[string][]*ClassName
	members map[string][]MemberName
	// simple names already used unqualified, e.g. for declarations in the
	// file's own package.
	referenced map[string]struct{}
}

// ImportPlan is the outcome of import resolution for one file: the imports
// to write and the names the rendered code uses for imported types and
// members. A plan is produced by FileSpec.CollectImports and consumed by
// FileSpec.Render.
type ImportPlan struct {
	// keyed by canonical name
	imports map[string]Import
	// keyed by the simple name or alias used in the file
	types   map[string]*ClassName
	members map[string]MemberName
}

func newImportPlan() *ImportPlan {
	return &ImportPlan{
		imports: map[string]Import{},
		types:   map[string]*ClassName{},
		members: map[string]MemberName{},
	}
}

// Imports returns all imports in the plan, plain imports first, each group
// sorted by qualified name.
func (p *ImportPlan) Imports() []Import {
	return sortImports(p.imports)
}

func sortImports(imports map[string]Import) []Import {
	ret := make([]Import, 0, len(imports))
	for _, imp := range imports {
		ret = append(ret, imp)
	}
	sort.Slice(ret, func(i, j int) bool {
		ai, aj := ret[i].Alias != "", ret[j].Alias != ""
		if ai != aj {
			return !ai
		}
		return ret[i].String() < ret[j].String()
	})
	return ret
}

// Lookup returns the import for the given canonical name, if any.
func (p *ImportPlan) Lookup(canonicalName string) (Import, bool) {
	imp, ok := p.imports[canonicalName]
	return imp, ok
}

// importCandidate is one canonical name competing for a simple name. It
// stands for a class, a member, or both when they share a canonical name.
type importCandidate struct {
	canonical string
	class     *ClassName
	member    MemberName
	hasMember bool
}

func (c importCandidate) record(plan *ImportPlan, name string) {
	if c.class != nil {
		plan.types[name] = c.class
	}
	if c.hasMember {
		plan.members[name] = c.member
	}
}

// importGroup is the set of distinct candidates competing for one simple
// name. Types and members with the same simple name share a group: in
// Kotlin one import brings in everything with that name.
type importGroup struct {
	simpleName string
	candidates []importCandidate
	// index of the candidate that keeps the plain name, -1 if none does
	plain int
}

func (g *importGroup) add(c importCandidate) {
	for i, existing := range g.candidates {
		if existing.canonical != c.canonical {
			continue
		}
		if existing.class == nil {
			g.candidates[i].class = c.class
		}
		if !existing.hasMember && c.hasMember {
			g.candidates[i].member, g.candidates[i].hasMember = c.member, true
		}
		return
	}
	g.candidates = append(g.candidates, c)
}

// resolveImports decides which candidates are imported plainly and which
// get an alias. Groups with fewer candidates are resolved first, and every
// plain name is locked in before any alias is chosen, so the result only
// depends on the candidates and not on map iteration order.
func resolveImports(c importCandidates, explicit map[string]Import) *ImportPlan {
	plan := newImportPlan()

	// owner maps a name that is in use in the file to the canonical name it
	// stands for; "" means a declaration of the file itself.
	owner := map[string]string{}
	for name := range c.referenced {
		owner[name] = ""
	}
	for canonical, imp := range explicit {
		plan.imports[canonical] = imp
		name := imp.Alias
		if name == "" {
			name = canonical[strings.LastIndexByte(canonical, '.')+1:]
		}
		if _, taken := owner[name]; !taken {
			owner[name] = canonical
		}
	}

	byName := map[string]*importGroup{}
	group := func(name string) *importGroup {
		g, ok := byName[name]
		if !ok {
			g = &importGroup{simpleName: name, plain: -1}
			byName[name] = g
		}
		return g
	}
	// Types go first so that a type keeps the plain name over a member.
	for name, candidates := range c.types {
		g := group(name)
		for _, t := range candidates {
			g.add(importCandidate{canonical: t.CanonicalName(), class: t})
		}
	}
	for name, candidates := range c.members {
		g := group(name)
		for _, m := range candidates {
			g.add(importCandidate{canonical: m.CanonicalName(), member: m, hasMember: true})
		}
	}
	groups := make([]*importGroup, 0, len(byName))
	for _, g := range byName {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		gi, gj := groups[i], groups[j]
		if len(gi.candidates) != len(gj.candidates) {
			return len(gi.candidates) < len(gj.candidates)
		}
		return gi.simpleName < gj.simpleName
	})

	for _, g := range groups {
		if len(g.candidates) == 0 {
			panic(errors.AssertionFailedf("no import candidates for %q", g.simpleName))
		}
		own, taken := owner[g.simpleName]
		switch {
		case !taken:
			g.plain = 0
			owner[g.simpleName] = g.candidates[0].canonical
		case own != "":
			for i, candidate := range g.candidates {
				if candidate.canonical == own {
					g.plain = i
					break
				}
			}
		}
		if g.plain < 0 {
			continue
		}
		plain := g.candidates[g.plain]
		if _, ok := explicit[plain.canonical]; !ok {
			plan.imports[plain.canonical] = Import{QualifiedName: plain.canonical}
		}
		plain.record(plan, g.simpleName)
	}

	for _, g := range groups {
		var types, members []importCandidate
		for i, candidate := range g.candidates {
			switch {
			case i == g.plain:
			case candidate.class != nil:
				types = append(types, candidate)
			default:
				members = append(members, candidate)
			}
		}
		aliasGroup(plan, owner, g.simpleName, types, false)
		aliasGroup(plan, owner, g.simpleName, members, true)
	}
	return plan
}

// aliasGroup gives each candidate an alias that is not yet in use and
// records it in owner and plan.
func aliasGroup(plan *ImportPlan, owner map[string]string, simpleName string, candidates []importCandidate, member bool) {
	if len(candidates) == 0 {
		return
	}
	canonicals := make([]string, len(candidates))
	for i, candidate := range candidates {
		canonicals[i] = candidate.canonical
	}
	aliases := synthesizeAliases(simpleName, canonicals, member, func(name string) bool {
		_, taken := owner[name]
		return taken
	})
	for i, candidate := range candidates {
		alias := aliases[i]
		if _, taken := owner[alias]; taken {
			panic(errors.AssertionFailedf("alias %q for %s is already in use", alias, candidate.canonical))
		}
		owner[alias] = candidate.canonical
		plan.imports[candidate.canonical] = Import{QualifiedName: candidate.canonical, Alias: alias}
		candidate.record(plan, alias)
		Logger().Debug("aliased import",
			zap.String(fieldSimple, simpleName),
			zap.String(fieldCanonical, candidate.canonical),
			zap.String(fieldAlias, alias))
	}
}

// synthesizeAliases returns one alias per canonical name, built from the
// trailing segments of its enclosing package or class followed by
// simpleName: com.a.Builder becomes ABuilder, then ComABuilder if that is
// not enough to tell the candidates apart. Member aliases start with a
// lower-case letter.
func synthesizeAliases(simpleName string, canonicals []string, member bool, taken func(string) bool) []string {
	segments := make([][]string, len(canonicals))
	maxSegments := 0
	for i, canonical := range canonicals {
		parts := strings.Split(canonical, ".")
		parts = parts[:len(parts)-1]
		var segs []string
		for _, p := range parts {
			if p == "Companion" {
				continue
			}
			segs = append(segs, Capitalize(p))
		}
		segments[i] = segs
		maxSegments = max(maxSegments, len(segs))
	}

	suffix := Capitalize(simpleName)
	aliases := make([]string, len(canonicals))
	for k := 1; ; k++ {
		extra := max(0, k-maxSegments)
		seen := map[string]int{}
		for i, segs := range segments {
			prefix := strings.Join(segs[max(0, len(segs)-k):], "")
			if member {
				prefix = Decapitalize(prefix)
			}
			base := escapeAsAlias(prefix + suffix)
			if member && prefix == "" {
				base = escapeAsAlias(simpleName)
			}
			underscores := extra
			if extra > 0 {
				// Candidates whose whole path capitalizes the same way can
				// only be told apart by the suffix.
				underscores += seen[base] * (extra + 1)
				seen[base]++
			}
			aliases[i] = base + strings.Repeat("_", underscores)
		}
		if distinctAndFree(aliases, taken) {
			return aliases
		}
	}
}

func distinctAndFree(aliases []string, taken func(string) bool) bool {
	seen := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		if taken(a) {
			return false
		}
		if _, dup := seen[a]; dup {
			return false
		}
		seen[a] = struct{}{}
	}
	return true
}
