// Package docket generates unique, human-readable work-order identifiers and
// manages the on-disk layout of generated report artifacts in a multi-tenant
// record-keeping system.
//
// The package is designed to be embedded in host applications. End-users
// typically interact with the high-level Service façade exposed by the root
// package:
//
//	svc := docket.New(docket.WithStore(myStore))
//	id, _ := svc.AllocateIdentifier(ctx, "tenant-7")
//	ensured, _ := svc.EnsureDirectory(ctx, "tenant-7", id)
//	name, _ := svc.NextArtifactName(ctx, "tenant-7", id, "Density", fieldDate, false)
//	filed := svc.WriteArtifact(ctx, pdfBytes, name.URL)
//
// Identifier allocation is safe under concurrent callers across horizontally
// scaled instances: counters live in the backing store and are only touched
// through duplicate-detecting inserts and conditional updates, never through
// in-process locks. Artifact folders are created idempotently and verified
// with a bounded wait tuned for cloud-synced storage.
//
// For more details see the individual sub-packages under service/.
package docket
