package update

// Prompter asks the user a yes/no question. Implementations block until the
// user answers; dismissing the dialog counts as no.
type Prompter interface {
	Confirm(title, message string) bool
}

// Notifier shows an error to the user.
type Notifier interface {
	NotifyError(title, message string)
}

// StaticPrompter answers every confirmation with its own value.
type StaticPrompter bool

// Confirm implements Prompter.
func (p StaticPrompter) Confirm(string, string) bool { return bool(p) }

// PromptFunc adapts a plain function to the Prompter interface.
type PromptFunc func(title, message string) bool

// Confirm implements Prompter.
func (f PromptFunc) Confirm(title, message string) bool { return f(title, message) }

// DiscardNotifier drops every notification.
type DiscardNotifier struct{}

// NotifyError implements Notifier.
func (DiscardNotifier) NotifyError(string, string) {}

// NotifyFunc adapts a plain function to the Notifier interface.
type NotifyFunc func(title, message string)

// NotifyError implements Notifier.
func (f NotifyFunc) NotifyError(title, message string) { f(title, message) }
