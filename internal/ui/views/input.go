package views

import (
	"github.com/Cyclone1070/agentgate/internal/ui/models"
)

// RenderInput renders the input bar
func RenderInput(s models.State, st Styles) string {
	return st.Input.Render(s.Input.View())
}
