package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

// LoggerTestSuite tests the log package
type LoggerTestSuite struct {
	suite.Suite
	originalLogger zerolog.Logger
	testOutput     *bytes.Buffer
}

// SetupTest runs before each test
func (s *LoggerTestSuite) SetupTest() {
	s.originalLogger = Logger
	s.testOutput = &bytes.Buffer{}
	Logger = New(zerolog.SyncWriter(s.testOutput), zerolog.DebugLevel)
}

// TearDownTest runs after each test
func (s *LoggerTestSuite) TearDownTest() {
	Logger = s.originalLogger
}

func (s *LoggerTestSuite) lastEntry() map[string]any {
	lines := strings.Split(strings.TrimSpace(s.testOutput.String()), "\n")
	s.Require().NotEmpty(lines)

	var entry map[string]any
	s.Require().NoError(json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

// TestNewWritesJSONToNonTerminal tests that buffers get JSON lines
func (s *LoggerTestSuite) TestNewWritesJSONToNonTerminal() {
	Info().Str("backend", "http://localhost:8000/").Msg("probe issued")

	entry := s.lastEntry()
	s.Equal("info", entry["level"])
	s.Equal("probe issued", entry["message"])
	s.Equal("http://localhost:8000/", entry["backend"])
	s.Contains(entry, "time")
}

// TestLevels tests each level helper
func (s *LoggerTestSuite) TestLevels() {
	Debug().Msg("debug test")
	Info().Msg("info test")
	Warn().Msg("warn test")
	Error().Msg("error test")

	output := s.testOutput.String()
	s.Equal(4, strings.Count(output, `"goid":"`))
	s.Contains(output, `"level":"debug"`)
	s.Contains(output, `"level":"info"`)
	s.Contains(output, `"level":"warn"`)
	s.Contains(output, `"level":"error"`)
}

// TestGetGoroutineID tests the goroutine ID extraction
func (s *LoggerTestSuite) TestGetGoroutineID() {
	id := goroutineID()
	s.NotEmpty(id)
	s.NotEqual(unknownGoroutine, id)
	for _, char := range id {
		s.True(char >= '0' && char <= '9', "goroutine ID should be numeric")
	}
	s.Equal(id, goroutineID())
}

// TestGoroutineIDTagsEvents tests that events logged from different goroutines carry their own IDs
func (s *LoggerTestSuite) TestGoroutineIDTagsEvents() {
	Info().Msg("from test goroutine")
	mainEntry := s.lastEntry()

	done := make(chan string, 1)
	go func() {
		Info().Msg("from mount goroutine")
		done <- goroutineID()
	}()
	otherID := <-done
	otherEntry := s.lastEntry()

	s.Equal(goroutineID(), mainEntry["goid"])
	s.Equal(otherID, otherEntry["goid"])
	s.NotEqual(mainEntry["goid"], otherEntry["goid"])
}

// TestComponent tests component sub-loggers
func (s *LoggerTestSuite) TestComponent() {
	logger := Component("page")
	logger.Info().Msg("mounted")

	entry := s.lastEntry()
	s.Equal("page", entry["component"])
	s.Equal("mounted", entry["message"])
}

// TestSetLevel tests level switching by name
func (s *LoggerTestSuite) TestSetLevel() {
	s.NoError(SetLevel("WARN"))
	s.Equal(zerolog.WarnLevel, Logger.GetLevel())

	Info().Msg("dropped")
	s.NotContains(s.testOutput.String(), "dropped")

	Warn().Msg("kept")
	s.Contains(s.testOutput.String(), "kept")
}

// TestSetLevelEmptyKeepsLevel tests that an empty level is a no-op
func (s *LoggerTestSuite) TestSetLevelEmptyKeepsLevel() {
	s.NoError(SetLevel("  "))
	s.Equal(zerolog.DebugLevel, Logger.GetLevel())
}

// TestSetLevelInvalid tests that unknown levels are rejected
func (s *LoggerTestSuite) TestSetLevelInvalid() {
	s.Error(SetLevel("loud"))
	s.Equal(zerolog.DebugLevel, Logger.GetLevel())
}

// TestSetDebugMode tests switching to debug level
func (s *LoggerTestSuite) TestSetDebugMode() {
	Logger = New(s.testOutput, zerolog.InfoLevel)
	SetDebugMode()
	s.Equal(zerolog.DebugLevel, Logger.GetLevel())
}

// TestLoggerInitialization tests that the package logger is initialized
func (s *LoggerTestSuite) TestLoggerInitialization() {
	level := s.originalLogger.GetLevel()
	s.True(level >= zerolog.DebugLevel && level <= zerolog.FatalLevel)
}

// TestConcurrentLogging tests that logging is thread-safe
func (s *LoggerTestSuite) TestConcurrentLogging() {
	numGoroutines := 10
	done := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer func() { done <- true }()
			Info().Int("render", id).Msg("concurrent render")
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	s.Contains(s.testOutput.String(), "concurrent render")
}

// TestSuite runs the logger test suite
func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
