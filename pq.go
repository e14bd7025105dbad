package ringmaze

// SearchNode is a joint state and the number of synchronized moves taken to reach it.
type SearchNode struct {
	State JointState
	Time  int
}

type priorityQueueItem struct {
	node     SearchNode
	sequence uint64
}

// priorityQueue orders nodes by arrival time, FIFO among equal times so that
// identical inputs always expand in the same order.
type priorityQueue []priorityQueueItem

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	if queue[i].node.Time != queue[j].node.Time {
		return queue[i].node.Time < queue[j].node.Time
	}
	return queue[i].sequence < queue[j].sequence
}
func (queue priorityQueue) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *priorityQueue) Push(x any) {
	*queue = append(*queue, x.(priorityQueueItem))
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	*queue = oldQueue[:n-1]
	return item
}
