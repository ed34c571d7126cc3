// Package diff builds the line-level model of a comparison between a "source" and a "target" text and renders (slices of) that model as a unified-diff patch.
//
// Representation: A Model is an immutable, ordered slice of Entry values. Each Entry is exactly one physical line tagged with a Status:
//   - StatusUnchanged: the line is present in both texts
//   - StatusRemoved: the line is present only in the source
//   - StatusAdded: the line is present only in the target
//
// Entry.Text never contains the line terminator.
//
// Invariants:
//   - concat(Unchanged+Removed entries, in order) reconstructs the source, line by line
//   - concat(Unchanged+Added entries, in order) reconstructs the target, line by line
//   - Entries keep the order produced by the LineDiffer; status and order never change after Build
//
// Line differ: The alignment algorithm is a collaborator behind the LineDiffer interface. A LineDiffer returns ordered Change groups whose Text may span several
// lines; Build splits the groups into entries. Two implementations are provided: DMPDiffer (diff-match-patch in line mode, the default) and DifflibDiffer
// (SequenceMatcher opcodes). Tests may substitute any deterministic stub.
//
// Getting a model and a patch:
//
//	m := diff.Build(diff.DMPDiffer{}, sourceText, targetText)
//	fmt.Print(diff.RenderPatch("old.txt", "new.txt", m, nil))
//
// Patches: RenderPatch emits a "---"/"+++" header followed by one " ", "-", or "+" prefixed line per entry. It has no "@@" hunk headers and no timestamps; it is
// meant for humans and for pasting, not for byte-exact compatibility with any diff tool.
//
// Newlines: '\n' is the line separator. A final line without '\n' is still a line. A '\r' before the '\n' is dropped.
package diff
