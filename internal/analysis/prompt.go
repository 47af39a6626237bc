package analysis

import (
	"fmt"
	"strings"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/profile"
)

func joinOrNone(tags []string) string {
	if len(tags) == 0 {
		return "None"
	}
	return strings.Join(tags, ", ")
}

// BuildPrompt renders the analysis request sent to the model for one menu and
// one dietary profile. The model is asked to answer with the three marker
// delimited sections ParseSections understands.
func BuildPrompt(menuText string, p *profile.Profile) string {
	var b strings.Builder

	b.WriteString("You are MenuPlus AI, an expert food safety assistant. ")
	b.WriteString("Analyze this restaurant menu based on the user's dietary profile.\n\n")

	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Allergies (CRITICAL - these can cause serious health reactions): %s\n", joinOrNone(p.Allergies))
	fmt.Fprintf(&b, "- Dietary Restrictions (must avoid): %s\n", joinOrNone(p.DietaryRestrictions))
	fmt.Fprintf(&b, "- Dislikes (prefers not to eat): %s\n", joinOrNone(p.Dislikes))
	fmt.Fprintf(&b, "- Preferences (enjoys eating): %s\n", joinOrNone(p.Preferences))
	fmt.Fprintf(&b, "- Language: %s\n\n", p.Language())

	b.WriteString("MENU:\n")
	b.WriteString(strings.TrimSpace(menuText))
	b.WriteString("\n\n")

	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("Analyze each menu item and provide THREE DISTINCT SECTIONS in your response, separated by the markers below.\n\n")
	b.WriteString("1. Convert menu to user language if needed\n")
	b.WriteString("2. Classify items: RED (contains allergies/restrictions), YELLOW (contains dislikes), GREEN (safe)\n")
	b.WriteString("3. Structure your response EXACTLY as follows:\n\n")

	b.WriteString(SafeMenuStart + "\n")
	b.WriteString("List ONLY the items marked as GREEN (completely safe for this user).\n")
	b.WriteString("Format: Item name, brief description, why it's safe.\n")
	b.WriteString("Focus on what they CAN eat without worry.\n")
	b.WriteString(SafeMenuEnd + "\n\n")

	b.WriteString(BestMenuStart + "\n")
	b.WriteString("Provide TOP 5 personalized recommendations based on their preferences.\n")
	b.WriteString("Format: Ranked list with detailed reasoning.\n")
	b.WriteString("Explain why each recommendation matches their taste profile.\n")
	b.WriteString(BestMenuEnd + "\n\n")

	b.WriteString(FullMenuStart + "\n")
	b.WriteString("Complete menu with ALL items annotated with safety ratings.\n")
	b.WriteString("Format each item as:\n")
	b.WriteString("[RED/YELLOW/GREEN] Item Name\n")
	b.WriteString("- Description (translated)\n")
	b.WriteString("- Concerns: (allergies, restrictions, or dislikes present)\n")
	b.WriteString("- Recommendation: (safe to eat / avoid / ask about ingredients)\n\n")
	b.WriteString("Include summary at end:\n")
	b.WriteString("SUMMARY:\n")
	b.WriteString("Safest Options: [list]\n")
	b.WriteString("Items to Avoid: [list]\n")
	b.WriteString("Ask Staff About: [items needing clarification]\n")
	b.WriteString(FullMenuEnd + "\n\n")

	b.WriteString("IMPORTANT: Use the EXACT markers shown above (=== SECTION NAME START/END ===) so the app can parse your response correctly.")

	return b.String()
}
