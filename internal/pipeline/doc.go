// Package pipeline implements the per-page stages that turn an exported
// notebook page into a site page.
//
// Stages, in the order the page transformer runs them:
//   - text preprocessing (regex substitutions on the raw string)
//   - parsing into a DOM (golang.org/x/net/html, queried with goquery)
//   - skip checks (blocked title keywords, minimum visible text)
//   - structural classification (envelope, topic, date, content, legacy blocks)
//   - style tagging and per-page font-size ranking
//   - localized list numbering
//   - font-size stripping
//   - small image suppression and table text tagging
//   - metadata extraction and injection
//   - image reference resolution through a lookup.Resolver
//   - stylesheet and fragment injection
//
// Every DOM stage first decides what to change and then applies the changes,
// so no stage mutates a node set it is still iterating.
package pipeline
