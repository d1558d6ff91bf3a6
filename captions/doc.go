// Package captions discovers image markers in preprocessed markdown, locates
// their caption candidates, and ties captions to in-text references.
//
// Discovery is distance-driven: starting from an image marker, lines at
// growing distances are searched for caption-shaped text until a distance
// yields nothing, then one extended sweep closes the search. The number of
// captions found and the presence of competing image markers nearby grade
// each image as normal, abnormal, or extreme abnormal.
//
// Reference association scans the whole document for occurrences of each
// caption's figure identifier. Captions that end up with no references but a
// suspicious digit run are handed to the resolver package, which trims
// trailing noise off the identifier and retries.
package captions
