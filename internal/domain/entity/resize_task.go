package entity

const TaskTypeResize = "resize"

// ResizeTask lives only on the resize queue.
type ResizeTask struct {
	Type    string `json:"type"`
	ImageID string `json:"imageId"`
	Bucket  string `json:"bucket"`
	Key     string `json:"key"`
	Size    string `json:"size"`
}

func NewResizeTask(imageID, bucket, key, size string) ResizeTask {
	return ResizeTask{
		Type:    TaskTypeResize,
		ImageID: imageID,
		Bucket:  bucket,
		Key:     key,
		Size:    size,
	}
}
