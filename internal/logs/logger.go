package logs

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Fields carries the structured context attached to a log line.
type Fields = map[string]interface{}

var logger = log.New(os.Stdout, "", 0)

// LogJSON writes a single JSON log line to stdout.
// Levels: "DEBUG", "INFO", "WARN", "ERROR" & "FATAL"
func LogJSON(level, message string, fields Fields) {
	logEntry := Fields{
		"severity": level,
		"message":  message,
		"time":     time.Now().Format(time.RFC3339),
	}
	for k, v := range fields {
		logEntry[k] = v
	}
	jsonLog, _ := json.Marshal(logEntry)
	logger.Println(string(jsonLog))
}
