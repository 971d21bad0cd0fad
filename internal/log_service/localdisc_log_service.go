package log_service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// LocalDiscLogService appends log lines to <logDir>/<nodeID>.log.
type LocalDiscLogService struct {
	logDir   string
	nodeID   string
	mu       sync.Mutex
	logger   *log.Logger
	minLevel int
}

func NewLocalDiscLogService(logDir string, nodeID string) *LocalDiscLogService {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	filePath := filepath.Join(logDir, fmt.Sprintf("%s.log", nodeID))
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}

	return &LocalDiscLogService{
		logDir:   logDir,
		nodeID:   nodeID,
		logger:   log.New(file, "", 0),
		minLevel: DebugLevelValue,
	}
}

func (ls *LocalDiscLogService) SetMinLogLevel(level string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.minLevel = GetLevelValue(level)
}

func (ls *LocalDiscLogService) write(level string, event LogEvent) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if GetLevelValue(level) < ls.minLevel {
		return
	}
	ls.logger.Println(FormatLog(level, ls.nodeID, event))
}

func (ls *LocalDiscLogService) Debug(event LogEvent) {
	ls.write(DebugLevel, event)
}

func (ls *LocalDiscLogService) Info(event LogEvent) {
	ls.write(InfoLevel, event)
}

func (ls *LocalDiscLogService) Warn(event LogEvent) {
	ls.write(WarnLevel, event)
}

func (ls *LocalDiscLogService) Error(event LogEvent) {
	ls.write(ErrorLevel, event)
}
