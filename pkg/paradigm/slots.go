package paradigm

// Slot is one grammatical cell of the inflection table. Each slot maps to a
// fixed element identifier in the source markup through slotIDs.
type Slot int

const (
	SlotNounSingular Slot = iota
	SlotNounPlural

	SlotAdjMascSingular
	SlotAdjFemSingular
	SlotAdjMascPlural
	SlotAdjFemPlural

	SlotInfinitive

	SlotPresentMascSingular
	SlotPresentFemSingular
	SlotPresentMascPlural
	SlotPresentFemPlural

	SlotImperativeMascSingular
	SlotImperativeFemSingular
	SlotImperativeMascPlural
	SlotImperativeFemPlural

	SlotFuture1Singular
	SlotFuture1Plural
	SlotFuture2MascSingular
	SlotFuture2FemSingular
	SlotFuture2MascPlural
	SlotFuture2FemPlural
	SlotFuture3MascSingular
	SlotFuture3FemSingular
	SlotFuture3MascPlural
	SlotFuture3FemPlural

	SlotPast1Singular
	SlotPast1Plural
	SlotPast2MascSingular
	SlotPast2FemSingular
	SlotPast2MascPlural
	SlotPast2FemPlural
	SlotPast3MascSingular
	SlotPast3FemSingular
	SlotPast3Plural
)

var slotIDs = map[Slot]string{
	SlotNounSingular: "s",
	SlotNounPlural:   "p",

	SlotAdjMascSingular: "ms-a",
	SlotAdjFemSingular:  "fs-a",
	SlotAdjMascPlural:   "mp-a",
	SlotAdjFemPlural:    "fp-a",

	SlotInfinitive: "INF-L",

	SlotPresentMascSingular: "AP-ms",
	SlotPresentFemSingular:  "AP-fs",
	SlotPresentMascPlural:   "AP-mp",
	SlotPresentFemPlural:    "AP-fp",

	SlotImperativeMascSingular: "IMP-2ms",
	SlotImperativeFemSingular:  "IMP-2fs",
	SlotImperativeMascPlural:   "IMP-2mp",
	SlotImperativeFemPlural:    "IMP-2fp",

	SlotFuture1Singular:     "IMPF-1s",
	SlotFuture1Plural:       "IMPF-1p",
	SlotFuture2MascSingular: "IMPF-2ms",
	SlotFuture2FemSingular:  "IMPF-2fs",
	SlotFuture2MascPlural:   "IMPF-2mp",
	SlotFuture2FemPlural:    "IMPF-2fp",
	SlotFuture3MascSingular: "IMPF-3ms",
	SlotFuture3FemSingular:  "IMPF-3fs",
	SlotFuture3MascPlural:   "IMPF-3mp",
	SlotFuture3FemPlural:    "IMPF-3fp",

	SlotPast1Singular:     "PERF-1s",
	SlotPast1Plural:       "PERF-1p",
	SlotPast2MascSingular: "PERF-2ms",
	SlotPast2FemSingular:  "PERF-2fs",
	SlotPast2MascPlural:   "PERF-2mp",
	SlotPast2FemPlural:    "PERF-2fp",
	SlotPast3MascSingular: "PERF-3ms",
	SlotPast3FemSingular:  "PERF-3fs",
	SlotPast3Plural:       "PERF-3p",
}

// Feminine-plural imperative and future slots carry the masculine-usage note
// in their side panels; the plural past 2nd-person slots carry the
// unstressed-ending note. Those notes must not surface as variants.
var modernNoteSlots = map[Slot]bool{
	SlotImperativeFemPlural: true,
	SlotFuture2FemPlural:    true,
	SlotFuture3FemPlural:    true,
}

var unstressedNoteSlots = map[Slot]bool{
	SlotPast2MascPlural: true,
	SlotPast2FemPlural:  true,
}

// id returns the slot's element identifier in the source markup.
func (s Slot) id() string { return slotIDs[s] }

// noteFilters returns which boilerplate note to suppress when reading the
// slot's auxiliary panel.
func (s Slot) noteFilters() (dropUnstressed, dropModern bool) {
	return unstressedNoteSlots[s], modernNoteSlots[s]
}
