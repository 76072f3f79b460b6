package eventstore

import (
	"slices"
	"strings"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

/***** Filter *****/

// Filter selects the events of one dynamic event stream. Items are OR-ed.
type Filter struct {
	items []FilterItem
}

// Items returns the OR-ed items of the Filter.
func (f Filter) Items() []FilterItem {
	return f.items
}

// IsEmpty is true for a Filter that matches any event.
func (f Filter) IsEmpty() bool {
	for _, item := range f.items {
		if len(item.eventTypes) > 0 || len(item.predicates) > 0 {
			return false
		}
	}

	return true
}

/***** FilterItem *****/

// FilterItem is (eventType OR eventType ...) AND (predicate OR/AND predicate ...).
type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

/***** FilterPredicate *****/

// FilterPredicate matches a top-level string property of the event payload.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

// P builds a FilterPredicate, e.g. P("ISBN", "9780141439518").
func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds an engine-agnostic Filter that the engines translate to their query language.
// Only combinations that are useful for a dynamic consistency boundary can be expressed:
//
//   - empty filter (any event)
//   - (eventType OR eventType ...)
//   - (predicate OR predicate ...) or (predicate AND predicate ...)
//   - (eventType OR eventType ...) AND (predicate OR predicate ...)
//   - (eventType OR eventType ...) AND (predicate AND predicate ...)
//   - any of the above OR-ed with further items via OrMatching
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEvent returns an empty Filter.
	MatchingAnyEvent() Filter
}

type EmptyFilterItemBuilder interface {
	// AnyEventTypeOf adds event types to the current item. Empty types are dropped, the rest sorted and deduplicated.
	AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilderLackingPredicates

	// AnyPredicateOf adds predicates of which any must match. Partial predicates are dropped.
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes

	// AllPredicatesOf adds predicates of which all must match.
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
}

type FilterItemBuilderLackingPredicates interface {
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder

	// OrMatching closes the current item and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize closes the current item and returns the Filter.
	Finalize() Filter
}

type FilterItemBuilderLackingEventTypes interface {
	AndAnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) CompletedFilterItemBuilder
	OrMatching() EmptyFilterItemBuilder
	Finalize() Filter
}

type CompletedFilterItemBuilder interface {
	OrMatching() EmptyFilterItemBuilder
	Finalize() Filter
}

// filterBuilder implements all builder stages. It is passed by value, so every stage works on a copy.
type filterBuilder struct {
	filter            Filter
	currentFilterItem FilterItem
}

// BuildEventFilter starts a new Filter which must be completed with Finalize or MatchingAnyEvent.
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.currentFilterItem = FilterItem{}

	return fb
}

func (fb filterBuilder) AnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) FilterItemBuilderLackingPredicates {

	merged := append(slices.Clone(fb.currentFilterItem.eventTypes), eventType)
	fb.currentFilterItem.eventTypes = sanitizeEventTypes(append(merged, eventTypes...))

	return fb
}

func (fb filterBuilder) AndAnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) CompletedFilterItemBuilder {

	return fb.AnyEventTypeOf(eventType, eventTypes...)
}

func (fb filterBuilder) AnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	merged := append(slices.Clone(fb.currentFilterItem.predicates), predicate)
	fb.currentFilterItem.predicates = sanitizePredicates(append(merged, predicates...))

	return fb
}

func (fb filterBuilder) AndAnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.AnyPredicateOf(predicate, predicates...)
}

func (fb filterBuilder) AllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	fb.currentFilterItem.allPredicatesMustMatch = true

	return fb.AnyPredicateOf(predicate, predicates...)
}

func (fb filterBuilder) AndAllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.AllPredicatesOf(predicate, predicates...)
}

func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentFilterItem)
	fb.currentFilterItem = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return fb.filter
}

func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentFilterItem)

	return fb.filter
}

func sanitizeEventTypes(eventTypes []FilterEventTypeString) []FilterEventTypeString {
	eventTypes = slices.DeleteFunc(eventTypes, func(e FilterEventTypeString) bool {
		return e == ""
	})
	slices.Sort(eventTypes)

	return slices.Clip(slices.Compact(eventTypes))
}

func sanitizePredicates(predicates []FilterPredicate) []FilterPredicate {
	predicates = slices.DeleteFunc(predicates, func(p FilterPredicate) bool {
		return p.key == "" || p.val == ""
	})
	slices.SortFunc(predicates, func(a, b FilterPredicate) int {
		if c := strings.Compare(a.key, b.key); c != 0 {
			return c
		}

		return strings.Compare(a.val, b.val)
	})

	return slices.Clip(slices.Compact(predicates))
}
