package dto

// TrainModelRequest is the input DTO for the TrainModel use case.
type TrainModelRequest struct {
	DatasetPath string
	OutputPath  string
}

// TrainModelResponse summarises a completed training run.
type TrainModelResponse struct {
	ModelID     string
	OutputPath  string
	Rows        int
	Categories  int
	NEstimators int
}
