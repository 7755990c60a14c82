package constant

// Message roles, shared by displayed messages and the raw prompt history.
const (
	MessageRoleSystem    = "system"
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Internal pub/sub topic the conversation service publishes to when a reply
// carried a report. The consumer service fans the event out to NATS.
const ReportGeneratedTopic = "REPORT_GENERATED"
