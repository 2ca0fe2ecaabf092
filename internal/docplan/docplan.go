// Package docplan derives the document plan of a case from its
// application counts: which documents are in play, how many instances
// of each, and the per-instance pick defaults that must hold before
// any rendering.
package docplan

import (
	"sort"
	"strconv"

	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/selector"
)

// DocEntry is one document the selected applications call for. A
// document demanded by several applications appears once, required if
// any of them requires it, with every demanding application listed.
type DocEntry struct {
	Name     string   `json:"name"`
	Required bool     `json:"required"`
	Sources  []string `json:"sources"`
}

// OrderedDocs flattens the selected applications into their document
// list, first-seen order, required before optional within each
// application.
func OrderedDocs(applications map[string]int) []DocEntry {
	var out []DocEntry
	index := map[string]int{}
	add := func(name, appType string, required bool) {
		if name == "" {
			return
		}
		if i, ok := index[name]; ok {
			if required {
				out[i].Required = true
			}
			for _, s := range out[i].Sources {
				if s == appType {
					return
				}
			}
			out[i].Sources = append(out[i].Sources, appType)
			return
		}
		index[name] = len(out)
		out = append(out, DocEntry{Name: name, Required: required, Sources: []string{appType}})
	}
	for _, appType := range models.ApplicationTypes {
		if applications[appType] <= 0 {
			continue
		}
		set, ok := models.ApplicationDocs[appType]
		if !ok {
			continue
		}
		for _, d := range set.Required {
			add(d, appType, true)
		}
		for _, d := range set.Optional {
			add(d, appType, false)
		}
	}
	return out
}

// Instance is one printable document instance, keyed
// "{name}__{1-based index}" into the pick map.
type Instance struct {
	Name    string   `json:"name"`
	Index   int      `json:"index"`
	Key     string   `json:"key"`
	Sources []string `json:"sources"`
}

// InstanceKey builds the pick-map key for one document instance.
func InstanceKey(name string, index int) string {
	return name + "__" + strconv.Itoa(index)
}

// Instances expands the site's document counts into the full instance
// list: planned documents in plan order first, then any counted
// document outside the plan (kept so stale counts stay reachable),
// alphabetically for a stable order.
func Instances(site models.Site) []Instance {
	ordered := OrderedDocs(site.Applications)
	var out []Instance
	seen := map[string]bool{}
	for _, d := range ordered {
		seen[d.Name] = true
		for i := 1; i <= site.Documents[d.Name]; i++ {
			out = append(out, Instance{Name: d.Name, Index: i, Key: InstanceKey(d.Name, i), Sources: d.Sources})
		}
	}
	extra := make([]string, 0, len(site.Documents))
	for name, count := range site.Documents {
		if name == "" || seen[name] || count <= 0 {
			continue
		}
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		for i := 1; i <= site.Documents[name]; i++ {
			out = append(out, Instance{Name: name, Index: i, Key: InstanceKey(name, i), Sources: []string{}})
		}
	}
	return out
}

// Reconcile repairs the document plan after case data changed: the
// building-title application count is clamped to the proposed-building
// count, the title delegation's document count follows it, and every
// title-delegation and statement instance gets a valid default target
// building. Reports whether anything was rewritten.
func Reconcile(site *models.Site) bool {
	if site == nil {
		return false
	}
	changed := false

	buildings := selector.SortedBuildings(site.ProposedBuildings)
	validID := func(id string) bool {
		if id == "" {
			return false
		}
		for _, b := range buildings {
			if b.ID == id {
				return true
			}
		}
		return false
	}
	idAt := func(i int) string {
		if i >= 0 && i < len(buildings) {
			return buildings[i].ID
		}
		return ""
	}

	if site.Applications == nil {
		site.Applications = map[string]int{}
	}
	if site.Documents == nil {
		site.Documents = map[string]int{}
	}
	if site.DocPick == nil {
		site.DocPick = map[string]models.Pick{}
	}

	titleCount := site.Applications[models.AppBuildingTitle]
	if titleCount > len(buildings) {
		titleCount = len(buildings)
		site.Applications[models.AppBuildingTitle] = titleCount
		changed = true
	}
	if site.Documents[models.DocDelegationTitle] != titleCount {
		site.Documents[models.DocDelegationTitle] = titleCount
		changed = true
	}

	// Each title delegation is bound to one proposed building, the
	// i-th instance to the i-th sorted building unless a valid pick
	// already points elsewhere.
	for i := 1; i <= titleCount; i++ {
		key := InstanceKey(models.DocDelegationTitle, i)
		pick := site.DocPick[key]
		if !validID(pick.TargetPropBuildingID) {
			if def := idAt(i - 1); pick.TargetPropBuildingID != def {
				pick.TargetPropBuildingID = def
				site.DocPick[key] = pick
				changed = true
			}
		}
	}

	// Statements default to the first building.
	for _, docName := range []string{models.DocStatementShared, models.DocStatementSole} {
		for i := 1; i <= site.Documents[docName]; i++ {
			key := InstanceKey(docName, i)
			pick := site.DocPick[key]
			if !validID(pick.TargetPropBuildingID) {
				if def := idAt(0); pick.TargetPropBuildingID != def {
					pick.TargetPropBuildingID = def
					site.DocPick[key] = pick
					changed = true
				}
			}
		}
	}
	return changed
}

// EnsureRequiredCounts raises every required document's count to at
// least one. The title delegation is exempt because its count mirrors
// the application count exactly. Reports whether anything changed.
func EnsureRequiredCounts(site *models.Site) bool {
	if site == nil {
		return false
	}
	if site.Documents == nil {
		site.Documents = map[string]int{}
	}
	changed := false
	for _, d := range OrderedDocs(site.Applications) {
		if !d.Required || d.Name == models.DocDelegationTitle {
			continue
		}
		if site.Documents[d.Name] < 1 {
			site.Documents[d.Name] = 1
			changed = true
		}
	}
	return changed
}
