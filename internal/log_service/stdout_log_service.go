package log_service

import (
	"log"
	"os"
	"sync"
)

type StdoutLogService struct {
	nodeID   string
	mu       sync.Mutex
	logger   *log.Logger
	minLevel int
}

func NewStdoutLogService(nodeID string) *StdoutLogService {
	return &StdoutLogService{
		nodeID:   nodeID,
		logger:   log.New(os.Stderr, "", 0),
		minLevel: DebugLevelValue,
	}
}

func (ls *StdoutLogService) SetMinLogLevel(level string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.minLevel = GetLevelValue(level)
}

func (ls *StdoutLogService) write(level string, event LogEvent) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if GetLevelValue(level) < ls.minLevel {
		return
	}
	ls.logger.Println(FormatLog(level, ls.nodeID, event))
}

func (ls *StdoutLogService) Debug(event LogEvent) {
	ls.write(DebugLevel, event)
}

func (ls *StdoutLogService) Info(event LogEvent) {
	ls.write(InfoLevel, event)
}

func (ls *StdoutLogService) Warn(event LogEvent) {
	ls.write(WarnLevel, event)
}

func (ls *StdoutLogService) Error(event LogEvent) {
	ls.write(ErrorLevel, event)
}
