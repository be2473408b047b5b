// Package utils предоставляет простой логгер для TUI и CLI режимов.
//
// В TUI режиме логгер пишет в .log файл (терминал занят интерфейсом),
// в CLI/server режимах - в переданный io.Writer (обычно stderr).
// Thread-safe через sync.Mutex.
package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	logOut      io.Writer
	logFile     *os.File
	logMutex    sync.Mutex
	debugOn     bool
	initialized bool
)

// InitLogger создает/открывает .log файл в директории dir.
//
// Имя файла: onelife-YYYY-MM-DD-HH-MM.log (например, onelife-2025-12-27-15-30.log).
// Пустой dir означает текущую директорию.
func InitLogger(dir string) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if initialized {
		return nil
	}

	if dir == "" {
		dir = "."
	}

	timestamp := time.Now().Format("2006-01-02-15-04")
	filename := filepath.Join(dir, fmt.Sprintf("onelife-%s.log", timestamp))

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logFile = f
	logOut = f
	initialized = true

	// Пишем напрямую без Info чтобы избежать deadlock (мьютекс уже захвачен)
	writeLine(fmt.Sprintf("[%s] INFO: Logger initialized file=%s\n",
		time.Now().Format("2006-01-02 15:04:05"), filename))

	return nil
}

// InitWriterLogger направляет лог в произвольный writer (stderr, буфер в тестах).
//
// В отличие от InitLogger может вызываться повторно и заменяет текущий вывод.
func InitWriterLogger(w io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()

	closeFileLocked()
	logOut = w
	initialized = w != nil
}

// SetDebug включает или выключает запись DEBUG сообщений.
func SetDebug(enabled bool) {
	logMutex.Lock()
	defer logMutex.Unlock()
	debugOn = enabled
}

// Info - информационное сообщение.
func Info(msg string, keyvals ...any) {
	log("INFO", msg, keyvals...)
}

// Error - сообщение об ошибке.
func Error(msg string, keyvals ...any) {
	log("ERROR", msg, keyvals...)
}

// Debug - отладочное сообщение.
func Debug(msg string, keyvals ...any) {
	log("DEBUG", msg, keyvals...)
}

// Warn - предупреждение.
func Warn(msg string, keyvals ...any) {
	log("WARN", msg, keyvals...)
}

// log - внутренняя функция записи в лог.
//
// Формат: [YYYY-MM-DD HH:MM:SS] LEVEL: message key1=value1 key2=value2
func log(level, msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logOut == nil {
		return
	}
	if level == "DEBUG" && !debugOn {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %s: %s", timestamp, level, msg)

	for i := 0; i < len(keyvals); i += 2 {
		if i+1 < len(keyvals) {
			line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
		}
	}

	writeLine(line + "\n")
}

// writeLine пишет строку; вызывается под logMutex.
// При ошибке записи fallback на stderr.
func writeLine(line string) {
	if _, err := io.WriteString(logOut, line); err != nil {
		fmt.Fprintf(os.Stderr, "%s", line)
		fmt.Fprintf(os.Stderr, "[LOGGER ERROR: write failed: %v]\n", err)
		return
	}

	if logFile != nil {
		if err := logFile.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Sync failed: %v]\n", err)
		}
	}
}

// Close закрывает лог-файл.
//
// Вызывается через defer в main().
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()
	closeFileLocked()
	logOut = nil
	initialized = false
}

func closeFileLocked() {
	if logFile != nil {
		if err := logFile.Close(); err != nil {
			// Логгер уже закрывается, только stderr
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Close failed: %v]\n", err)
		}
		logFile = nil
	}
}
