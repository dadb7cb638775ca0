package generate

import (
	"fmt"
	"strings"

	"github.com/fpang/marketing-campaign-mcp/internal/platform"
)

// ContentSystemPrompt is the system instruction for marketing copy
// generation. The response contract is a single JSON object so the output
// can be parsed without heuristics.
const ContentSystemPrompt = `You are an expert social media marketing copywriter. You write
platform-native marketing content that converts.

Always respond with ONLY a single JSON object in this exact format:
{
  "content": "the post text, without hashtags",
  "hashtags": ["tag1", "tag2"],
  "cta": "call to action line, or empty string"
}

Do not include markdown fences, commentary, or any text outside the JSON
object. Hashtags must not include the # prefix.`

// BuildContentPrompt creates the user prompt for one platform's content
// piece, embedding the platform ceilings and the requested style so the
// model targets the constraints directly.
func BuildContentPrompt(req ContentRequest) string {
	var sb strings.Builder

	sb.WriteString("## Marketing Content Request\n\n")
	sb.WriteString("### Campaign Brief\n\n")
	sb.WriteString(req.Brief)
	sb.WriteString("\n\n")

	sb.WriteString("### Target Platform\n\n")
	sb.WriteString(fmt.Sprintf("Platform: %s\n", req.Platform.ID))
	if req.Platform.HasTextLimit() {
		sb.WriteString(fmt.Sprintf("Character limit: %d (the full published text, content plus hashtags, must fit)\n", req.Platform.MaxCharacters))
	} else {
		sb.WriteString("Character limit: none\n")
	}
	sb.WriteString(fmt.Sprintf("Maximum hashtags: %d\n", req.Platform.MaxHashtags))
	sb.WriteString(fmt.Sprintf("Caption style: %s\n\n", captionStyleGuidance(req.Platform.CaptionStyle)))

	sb.WriteString("### Requirements\n\n")
	if req.Style != "" {
		sb.WriteString(fmt.Sprintf("- Tone/style: %s\n", req.Style))
	}
	if req.TargetAudience != "" {
		sb.WriteString(fmt.Sprintf("- Target audience: %s\n", req.TargetAudience))
	}
	switch req.HashtagStrategy {
	case "industry-specific":
		sb.WriteString("- Hashtag strategy (industry-specific): use hashtags established in the campaign's industry\n")
	case "trending":
		sb.WriteString("- Hashtag strategy (trending): prefer hashtags currently trending and relevant to the campaign\n")
	case "branded":
		sb.WriteString("- Hashtag strategy (branded): prefer branded and campaign-specific hashtags\n")
	case "niche":
		sb.WriteString("- Hashtag strategy (niche): use narrowly targeted community hashtags over broad popular ones\n")
	case "none":
		sb.WriteString("- Do not include any hashtags\n")
	default:
		sb.WriteString(fmt.Sprintf("- Use relevant hashtags up to the platform maximum of %d\n", req.Platform.MaxHashtags))
	}
	if req.IncludeCTA {
		sb.WriteString("- End with a clear call to action in the \"cta\" field\n")
	} else {
		sb.WriteString("- Leave the \"cta\" field as an empty string\n")
	}
	sb.WriteString("\nRespond with ONLY the JSON object.")

	return sb.String()
}

// BuildImagePrompt creates the prompt for one platform's campaign image.
func BuildImagePrompt(req ImageRequest) string {
	var sb strings.Builder

	sb.WriteString(req.Brief)
	if req.ImageStyle != "" {
		sb.WriteString(fmt.Sprintf("\n\nVisual style: %s.", req.ImageStyle))
	}
	sb.WriteString(fmt.Sprintf(
		"\n\nComposed as a %s marketing image (%dx%d). No embedded text or watermarks.",
		req.Platform.ID, req.Platform.ImageWidth, req.Platform.ImageHeight,
	))

	return sb.String()
}

// captionStyleGuidance maps a platform caption style to prompt wording.
func captionStyleGuidance(style platform.CaptionStyle) string {
	switch style {
	case platform.StyleShortEmoji:
		return "short, punchy, emoji-friendly"
	case platform.StyleProfessionalDetailed:
		return "professional, detailed, paragraph-form"
	case platform.StyleConciseInline:
		return "concise, inline, no filler"
	case platform.StyleMinimal:
		return "minimal overlay text, a few words at most"
	default:
		return "natural for the platform"
	}
}
