// Package workflow syncs a wizard state to the disclosure backend.
//
// Each sub-resource runs the same cycle: build its payload, skip it if the
// section is blank, create the backend record when no id is cached, then
// upsert its fields or upload its bulk rows. Sub-resources are synced one
// after another in mapper.SyncOrder. A failure in one is recorded in the
// Report and the next one still runs.
//
// SaveDraft is best-effort and only fails for problems that stop every
// sub-resource. Submit validates first, refuses to finalize a partial sync,
// and only then asks the backend to submit the disclosure.
package workflow
