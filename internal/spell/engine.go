package spell

// Engine builds the command line of an interactive spelling engine.
type Engine interface {
	Command() (name string, args []string)
	Name() string
}

// Hunspell implements Engine for hunspell's pipe mode.
//
// hunspell mishandles some apostrophes in pipe mode, see
// https://github.com/marcoagpinto/aoo-mozilla-en-dict/issues/23 and the
// tokenizer's ApostrophePolicy.
type Hunspell struct {
	Path         string // Executable, "hunspell" when empty
	Dictionary   string // -d value, engine default when empty
	PersonalDict string // -p value, full path to a personal word list
}

func (h *Hunspell) Command() (string, []string) {
	name := h.Path
	if name == "" {
		name = "hunspell"
	}
	args := []string{"-a"}
	if h.Dictionary != "" {
		args = append(args, "-d", h.Dictionary)
	}
	if h.PersonalDict != "" {
		args = append(args, "-p", h.PersonalDict)
	}
	return name, args
}

func (h *Hunspell) Name() string {
	return "hunspell"
}
