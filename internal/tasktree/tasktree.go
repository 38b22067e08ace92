// Package tasktree reconstructs parent/child structure from a flat task
// collection and flattens it back into the ordered, level-annotated sequence
// every display surface (table, collapse state, Gantt rows) consumes.
package tasktree

import "github.com/teamgrid/tracker-api/internal/models"

// Node wraps a task with its resolved children. Children keep the relative
// order their tasks had in the input collection.
type Node struct {
	Task     *models.Task
	Children []*Node
}

// BuildForest groups a flat collection into trees. A task whose parent is not
// present in the collection is promoted to a root rather than dropped: losing
// a subtree silently is worse than anchoring it at the wrong level. A task
// whose parent chain loops back onto itself is promoted the same way, so the
// result is always a true forest and traversal cannot loop.
func BuildForest(tasks []models.Task) []*Node {
	index := make(map[uint64]*Node, len(tasks))
	for i := range tasks {
		tasks[i].Level = 0
		tasks[i].HasChildren = false
		index[tasks[i].ID] = &Node{Task: &tasks[i]}
	}

	roots := make([]*Node, 0, len(tasks))
	for i := range tasks {
		node := index[tasks[i].ID]
		parentID := tasks[i].ParentID
		if parentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := index[*parentID]
		if !ok || onOwnAncestorChain(tasks[i].ID, *parentID, index) {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
		parent.Task.HasChildren = true
	}

	return roots
}

// onOwnAncestorChain reports whether walking parent links upward from
// parentID reaches taskID again. The visited set also terminates walks over
// cycles that do not include taskID itself.
func onOwnAncestorChain(taskID, parentID uint64, index map[uint64]*Node) bool {
	visited := make(map[uint64]struct{})
	current := parentID
	for {
		if current == taskID {
			return true
		}
		if _, seen := visited[current]; seen {
			return false
		}
		visited[current] = struct{}{}

		node, ok := index[current]
		if !ok || node.Task.ParentID == nil {
			return false
		}
		current = *node.Task.ParentID
	}
}

// Flatten emits the forest in pre-order, assigning Level as it descends.
// Every descendant of a node occupies a contiguous block immediately after
// it, before the next sibling subtree; sibling order is exactly the input
// order, never re-sorted.
func Flatten(forest []*Node) []models.Task {
	out := make([]models.Task, 0, countNodes(forest))
	for _, root := range forest {
		out = appendSubtree(out, root, 0)
	}
	return out
}

func appendSubtree(out []models.Task, node *Node, level int) []models.Task {
	node.Task.Level = level
	out = append(out, *node.Task)
	for _, child := range node.Children {
		out = appendSubtree(out, child, level+1)
	}
	return out
}

func countNodes(forest []*Node) int {
	n := 0
	for _, root := range forest {
		n += 1 + countNodes(root.Children)
	}
	return n
}

// FlattenTasks is the common build-then-flatten pipeline.
func FlattenTasks(tasks []models.Task) []models.Task {
	return Flatten(BuildForest(tasks))
}
