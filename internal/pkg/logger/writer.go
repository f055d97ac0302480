package logger

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// LogWriter 把 GORM 的 Printf 风格日志写入 zap 的输出
type LogWriter struct {
	zapcore.WriteSyncer
}

func (l *LogWriter) Printf(format string, args ...interface{}) {
	_, _ = l.WriteSyncer.Write([]byte(fmt.Sprintf(format, args...) + "\n"))
	_ = l.WriteSyncer.Sync()
}

func GetWriter() *LogWriter {
	return logWriter
}
