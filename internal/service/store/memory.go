// Package store 保存本次运行期间上传的工作簿快照，进程退出即失效。
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/91225Gov/po-comparison/internal/model"
)

// ErrFileNotFound 指定的上传文件不存在
var ErrFileNotFound = errors.New("uploaded file not found")

// UploadedFile 一次上传的工作簿快照
type UploadedFile struct {
	ID         string
	Filename   string
	UploadedAt time.Time
	SheetOrder []string                // 工作簿内的工作表顺序
	Sheets     map[string]*model.Table // 工作表名 -> 表快照
}

// Table 取指定工作表；sheet 为空时取第一张
func (u *UploadedFile) Table(sheet string) (*model.Table, error) {
	if sheet == "" {
		if len(u.SheetOrder) == 0 {
			return nil, fmt.Errorf("file %q has no sheets", u.Filename)
		}
		sheet = u.SheetOrder[0]
	}
	t, ok := u.Sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q not found in file %q", sheet, u.Filename)
	}
	return t, nil
}

// SheetInfos 工作表概要，按工作簿内顺序
func (u *UploadedFile) SheetInfos() []model.SheetInfo {
	infos := make([]model.SheetInfo, 0, len(u.SheetOrder))
	for _, name := range u.SheetOrder {
		infos = append(infos, model.SheetInfo{
			Name:     name,
			RowCount: u.Sheets[name].RowCount(),
		})
	}
	return infos
}

// MemoryStore 内存文件存储
type MemoryStore struct {
	files map[string]*UploadedFile
	mu    sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files: make(map[string]*UploadedFile),
	}
}

// AddFile 保存上传文件
func (s *MemoryStore) AddFile(f *UploadedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[f.ID] = f
}

// GetFile 获取单个上传文件
func (s *MemoryStore) GetFile(id string) (*UploadedFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok {
		return nil, ErrFileNotFound
	}
	return f, nil
}

// GetTable 取某上传文件的某工作表
func (s *MemoryStore) GetTable(id, sheet string) (*model.Table, error) {
	f, err := s.GetFile(id)
	if err != nil {
		return nil, err
	}
	return f.Table(sheet)
}

// ListFiles 列出全部上传文件，按上传时间排序
func (s *MemoryStore) ListFiles() []*UploadedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*UploadedFile, 0, len(s.files))
	for _, f := range s.files {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UploadedAt.Before(result[j].UploadedAt)
	})
	return result
}

// DeleteFile 删除单个上传文件
func (s *MemoryStore) DeleteFile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return ErrFileNotFound
	}
	delete(s.files, id)
	return nil
}

// Clear 清空全部上传文件
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string]*UploadedFile)
}

// Count 上传文件数量
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
