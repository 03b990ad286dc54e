// Package audit checks that modified knowledge base articles also bump their
// modification date.
//
// Service compares the front matter of every tracked file changed in a commit
// range and reports the files whose content changed while the modified-date
// field stayed the same. FilterChanges and EvaluateComparisons hold the pure
// decision logic; CommandBuilder wires the Cobra command, configuration and
// git collaborators.
package audit
