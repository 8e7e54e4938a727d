package logx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorWhite  = "\033[97m"

	colorBoldRed = "\033[1;31m"
)

// ConsoleFormatter formats logs for console output with colors
type ConsoleFormatter struct {
	config *Config
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(config *Config) *ConsoleFormatter {
	return &ConsoleFormatter{config: config}
}

// Format formats a log entry for console output
func (f *ConsoleFormatter) Format(entry *LogEntry) ([]byte, error) {
	var builder strings.Builder

	if f.config.EnableTimestamp {
		timestamp := entry.Timestamp.Format(f.config.TimeFormat)
		if f.config.EnableColors {
			builder.WriteString(colorGray)
			builder.WriteString(timestamp)
			builder.WriteString(colorReset)
		} else {
			builder.WriteString(timestamp)
		}
		builder.WriteString(" ")
	}

	builder.WriteString(f.formatLevel(entry.Level))
	builder.WriteString(" ")
	builder.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if f.config.EnableColors {
				builder.WriteString(fmt.Sprintf(" %s%s%s=%v", colorCyan, k, colorReset, entry.Fields[k]))
			} else {
				builder.WriteString(fmt.Sprintf(" %s=%v", k, entry.Fields[k]))
			}
		}
	}

	builder.WriteString("\n")
	return []byte(builder.String()), nil
}

func (f *ConsoleFormatter) formatLevel(level Level) string {
	label := fmt.Sprintf("%-5s", level.String())
	if !f.config.EnableColors {
		return label
	}

	switch level {
	case LevelDebug:
		return colorGray + label + colorReset
	case LevelInfo:
		return colorWhite + label + colorReset
	case LevelWarn:
		return colorYellow + label + colorReset
	case LevelError:
		return colorRed + label + colorReset
	case LevelFatal:
		return colorBoldRed + label + colorReset
	default:
		return label
	}
}

// JSONFormatter formats logs as JSON lines
type JSONFormatter struct {
	config *Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(config *Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

// Format formats a log entry as a JSON line
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	record := make(map[string]interface{}, len(entry.Fields)+3)

	record["level"] = entry.Level.String()
	record["message"] = entry.Message
	if f.config.EnableTimestamp {
		record["timestamp"] = entry.Timestamp.Format(time.RFC3339Nano)
	}

	for k, v := range entry.Fields {
		record[k] = v
	}

	if entry.Error != nil {
		record["error"] = entry.Error.Error()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}
