package rsdf

// WorkerNode is one registered node's contribution to the workforce
// gate. The simulated railway is staffed iff the ActiveWorkers sum over
// all nodes is strictly positive.
type WorkerNode struct {
	JobID         string `groups:"basic" json:"jobId"`
	ActiveWorkers int    `groups:"basic" json:"activeWorkers"`
}
