// Package task defines the task entity and its status model.
//
// The backing store (tasks.json) is a JSON array of task records:
//
//	[
//	    {
//	        "id": 1,
//	        "description": "Buy groceries",
//	        "status": "To do",
//	        "created_at": "2024-01-01T10:00:00Z",
//	        "updated_at": "2024-01-01T10:00:00Z"
//	    }
//	]
//
// # Status Values
//
//   - "To do": Task is pending (default for new tasks)
//   - "In Progress": Task is being worked on
//   - "Done": Task is complete
//
// Any status can be reached from any other through a mark command.
//
// # Commands and Filters
//
// Mark commands map to statuses through a fixed table:
//
//   - mark-todo -> To do
//   - mark-in-progress -> In Progress
//   - mark-done -> Done
//
// Status filters are matched case-insensitively against "todo", "to do",
// "in-progress", "in progress" and "done".
//
// # File Format
//
// When writing the store, the tracker uses:
//   - 4-space indentation
//   - Trailing newline
//   - RFC 3339 timestamps
package task
