// Package model defines the project-management entities shared by every
// consumer of this module: features, bugs and tasks, the ProjectData
// aggregate that groups them, and the status transition rules of each kind.
//
// # Entities
//
// Feature, Bug and Task embed BaseItem and form the closed ProjectItem union.
// Each marshals to JSON with a "type" discriminator:
//
//	{
//	  "type": "feature",
//	  "id": "FEAT-1",
//	  "title": "Login page",
//	  "description": "",
//	  "priority": "high",
//	  "tags": [],
//	  "createdAt": "2024-01-01T00:00:00Z",
//	  "updatedAt": "2024-01-01T00:00:00Z",
//	  "status": "backlog",
//	  "acceptanceCriteria": ["User can log in"]
//	}
//
// Values are plain records. The package never mutates them and performs no
// validation beyond the constructors of the constrained numbers below; use
// package validate to check untyped input.
//
// # Constrained numbers
//
// StoryPoints (1 to 21) and Hours (non-negative) are only produced by
// CreateStoryPoints, CreateHours or JSON decoding, each of which rejects
// out-of-range values.
//
// # Status transitions
//
//	feature: backlog -> planning -> in-progress -> testing -> completed
//	bug:     open -> in-progress -> resolved -> closed (reopen allowed)
//	task:    todo -> in-progress -> blocked | completed
//
// The exact tables are consulted by CanTransitionFeatureStatus,
// CanTransitionBugStatus, CanTransitionTaskStatus and CanTransitionStatus.
package model
