package logs

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

var logger = log.New(os.Stdout, "", 0)

// LogJSON writes one JSON object per line to stdout.
// Levels: "DEBUG", "INFO", "WARN", "ERROR" & "FATAL".
func LogJSON(level, message string, fields map[string]interface{}) {
	entry := map[string]interface{}{
		"severity": level,
		"message":  message,
		"time":     time.Now().Format(time.RFC3339),
	}
	for k, v := range fields {
		entry[k] = v
	}
	line, _ := json.Marshal(entry)
	logger.Println(string(line))
}
