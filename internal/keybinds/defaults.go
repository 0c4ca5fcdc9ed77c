package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerTableBindings(r)
	registerFormBindings(r)
	registerSearchBindings(r)
	registerConfirmBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

func registerTableBindings(r *Registry) {
	r.Register(ContextTable, "q", ActionQuit)
	r.Register(ContextTable, "r", ActionRefresh)
	r.Register(ContextTable, "a", ActionAdd)
	r.RegisterMultiple(ContextTable, []string{"e", "enter"}, ActionEdit)
	r.Register(ContextTable, "d", ActionDelete)
	r.Register(ContextTable, "/", ActionOpenSearch)
	r.Register(ContextTable, "esc", ActionClearSearch)
	r.Register(ContextTable, "y", ActionCopy)
	r.RegisterMultiple(ContextTable, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextTable, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextTable, []string{"g", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextTable, []string{"G", "end"}, ActionGoToBottom)
}

// registerFormBindings avoids printable keys so text inputs receive them
func registerFormBindings(r *Registry) {
	r.RegisterMultiple(ContextForm, []string{"enter", "ctrl+s"}, ActionSubmit)
	r.Register(ContextForm, "esc", ActionCancel)
	r.RegisterMultiple(ContextForm, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextForm, []string{"shift+tab", "up"}, ActionPrevField)
	r.Register(ContextForm, " ", ActionToggle)
}

func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "enter", ActionSubmit)
	r.Register(ContextSearch, "esc", ActionCancel)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "enter"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "esc", "q"}, ActionCancel)
}
