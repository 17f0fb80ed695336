// Package mapping owns the catalog lifecycle: business and keyword creation,
// renames, and the cascading delete that removes a business together with its
// last keyword.
//
// The Manager reports expected rule violations (duplicate names, missing
// rows) as ok=false results and reserves errors for storage failures. It also
// hosts the publish/subscribe registry that announces keyword and business
// removals to interested collaborators after the deletions commit.
package mapping
