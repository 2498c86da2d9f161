package logger

// NullLogger drops every entry
type NullLogger struct{}

var _ Logger = NullLogger{}

func NewNullLogger() NullLogger { return NullLogger{} }

func (NullLogger) Info(string, map[string]interface{})  {}
func (NullLogger) Debug(string, map[string]interface{}) {}
func (NullLogger) Error(error, map[string]interface{})  {}
func (NullLogger) Fatal(error, map[string]interface{})  {}
func (NullLogger) SetLevel(Level)                       {}
