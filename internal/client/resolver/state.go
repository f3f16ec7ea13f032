package resolver

// Kind enumerates the screens the shell can be asked to show.
type Kind int

const (
	Undetermined Kind = iota
	ShowLanguagePrompt
	ShowNativeUI
	ShowRemoteContent
)

func (k Kind) String() string {
	switch k {
	case Undetermined:
		return "Undetermined"
	case ShowLanguagePrompt:
		return "ShowLanguagePrompt"
	case ShowNativeUI:
		return "ShowNativeUI"
	case ShowRemoteContent:
		return "ShowRemoteContent"
	default:
		return "Unknown"
	}
}

// State is the resolver's current decision. URL is set only for
// ShowRemoteContent and is never empty there.
type State struct {
	Kind Kind
	URL  string
}

func (s State) String() string {
	if s.Kind == ShowRemoteContent {
		return s.Kind.String() + "(" + s.URL + ")"
	}
	return s.Kind.String()
}

// View is the flattened form of State consumed by the shell.
type View struct {
	ShowLanguagePrompt bool
	ShowRemoteContent  bool
	ContentURL         string
}

func (s State) View() View {
	return View{
		ShowLanguagePrompt: s.Kind == ShowLanguagePrompt,
		ShowRemoteContent:  s.Kind == ShowRemoteContent,
		ContentURL:         s.URL,
	}
}
