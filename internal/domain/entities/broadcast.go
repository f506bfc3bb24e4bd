package entities

// DeliveryResult is the outcome of one delivery attempt within a broadcast.
// Err is nil on success.
type DeliveryResult struct {
	RecipientID int64
	Err         error
}

// BroadcastReport summarizes a fan-out of one event announcement.
type BroadcastReport struct {
	EventID   int64
	Attempted int
	Delivered int
	Failed    int
	Results   []DeliveryResult
}

// Failures returns the results that carry an error.
func (r BroadcastReport) Failures() []DeliveryResult {
	var out []DeliveryResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
