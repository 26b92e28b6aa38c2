package domain_util

import (
	"sync"
	"sync/atomic"
)

// TaskProgress 一次乐队刷新中唱片目录解析的进度
type TaskProgress struct {
	ID          string
	Total       int32
	Processed   int32
	Created     int32
	Failed      int32
	Mu          sync.Mutex
	Initialized bool
	Status      string
}

// ProgressSnapshot 进度快照，作为 album_number 事件数据
type ProgressSnapshot struct {
	Total   int32 `json:"total"`
	Stored  int32 `json:"stored"`
	Created int32 `json:"created"`
	Failed  int32 `json:"failed"`
}

func NewTaskProgress(id string, total int) *TaskProgress {
	tp := &TaskProgress{ID: id, Status: "running"}
	tp.AddTotal(total)
	return tp
}

func (tp *TaskProgress) AddTotal(count int) {
	tp.Mu.Lock()
	defer tp.Mu.Unlock()
	atomic.AddInt32(&tp.Total, int32(count))
	tp.Initialized = true
}

// MarkReused 已存在的专辑，复用存储引用
func (tp *TaskProgress) MarkReused() {
	atomic.AddInt32(&tp.Processed, 1)
}

// MarkCreated 新抓取并写入的专辑
func (tp *TaskProgress) MarkCreated() {
	atomic.AddInt32(&tp.Processed, 1)
	atomic.AddInt32(&tp.Created, 1)
}

func (tp *TaskProgress) MarkFailed() {
	atomic.AddInt32(&tp.Failed, 1)
}

// AddFailed 一次计入多张未能解析的专辑
func (tp *TaskProgress) AddFailed(count int) {
	atomic.AddInt32(&tp.Failed, int32(count))
}

func (tp *TaskProgress) Finish(status string) {
	tp.Mu.Lock()
	defer tp.Mu.Unlock()
	tp.Status = status
}

func (tp *TaskProgress) Snapshot() ProgressSnapshot {
	return ProgressSnapshot{
		Total:   atomic.LoadInt32(&tp.Total),
		Stored:  atomic.LoadInt32(&tp.Processed),
		Created: atomic.LoadInt32(&tp.Created),
		Failed:  atomic.LoadInt32(&tp.Failed),
	}
}
