package campaign

import (
	"fmt"
	"sort"
)

// Template is a reusable playbook for one campaign type: which platforms to
// target, how to write and illustrate the posts, and when to post.
type Template struct {
	CampaignType         string   `json:"campaign_type"`
	RecommendedPlatforms []string `json:"recommended_platforms"`
	ContentStyle         string   `json:"content_style"`
	VisualStyle          string   `json:"visual_style"`
	PostingFrequency     string   `json:"posting_frequency"`
	OptimalTimes         []string `json:"optimal_times"`
	HashtagStrategy      string   `json:"hashtag_strategy"`
	CTAPattern           string   `json:"cta_pattern"`
}

// UnknownTemplateError indicates an unrecognized campaign type.
type UnknownTemplateError struct {
	CampaignType string
	Available    []string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown campaign type %q (available: %v)", e.CampaignType, e.Available)
}

// campaignTemplates maps campaign type keys to their playbooks. Recommended
// platforms use registry platform IDs so they can feed batch generation
// directly.
var campaignTemplates = map[string]Template{
	"job_recruitment": {
		CampaignType: "Job Recruitment",
		RecommendedPlatforms: []string{
			"linkedin_post", // primary for professional recruiting
			"twitter_post",  // tech community engagement
			"facebook_post", // broader reach
		},
		ContentStyle:     "Professional, benefits-focused, clear requirements",
		VisualStyle:      "Office environment, team collaboration, company culture",
		PostingFrequency: "2-3 times per week per position",
		OptimalTimes:     []string{"Tuesday 10am", "Wednesday 3pm", "Thursday 11am"},
		HashtagStrategy:  "Mix of role (#SeniorDeveloper), tech (#Python), and location (#RemoteJob)",
		CTAPattern:       "Apply now, View details, Join our team",
	},
	"product_launch": {
		CampaignType: "Product Marketing",
		RecommendedPlatforms: []string{
			"instagram_feed",    // visual storytelling
			"tiktok",            // product demos
			"pinterest_pin",     // product discovery
			"youtube_thumbnail", // detailed reviews
			"twitter_post",      // tech announcements
		},
		ContentStyle:     "Benefit-driven, problem-solution, feature highlights",
		VisualStyle:      "Product mockups, UI screenshots, lifestyle context",
		PostingFrequency: "Daily leading to launch, 3x/week post-launch",
		OptimalTimes:     []string{"Monday 9am", "Wednesday 1pm", "Friday 4pm"},
		HashtagStrategy:  "Product category (#AITools), use case (#Productivity), industry (#SaaS)",
		CTAPattern:       "Learn more, Try free trial, Get early access",
	},
	"event_promotion": {
		CampaignType: "Event Marketing",
		RecommendedPlatforms: []string{
			"linkedin_post",   // professional events
			"facebook_post",   // event pages and RSVPs
			"instagram_story", // visual teasers
			"twitter_post",    // live event coverage
		},
		ContentStyle:     "Excitement-building, speaker highlights, agenda teasers",
		VisualStyle:      "Venue photos, speaker headshots, schedule graphics",
		PostingFrequency: "Weekly countdown, daily week-of, hourly day-of",
		OptimalTimes:     []string{"Monday 8am", "Thursday 2pm", "Sunday 6pm"},
		HashtagStrategy:  "Event name (#TechConf2025), topic (#AIConference), location (#SFEvents)",
		CTAPattern:       "Register now, Save your spot, Get tickets",
	},
	"service_marketing": {
		CampaignType: "Service Marketing",
		RecommendedPlatforms: []string{
			"linkedin_post",     // B2B services
			"facebook_post",     // community services
			"instagram_feed",    // visual service showcase
			"youtube_thumbnail", // service explainers
		},
		ContentStyle:     "Trust-building, case studies, client testimonials",
		VisualStyle:      "Client success stories, before/after, process diagrams",
		PostingFrequency: "2-3 times per week, consistent schedule",
		OptimalTimes:     []string{"Tuesday 9am", "Thursday 2pm", "Saturday 10am"},
		HashtagStrategy:  "Service type (#Consulting), industry (#TechServices), value (#BusinessGrowth)",
		CTAPattern:       "Schedule consultation, Get quote, Learn more",
	},
	"content_marketing": {
		CampaignType: "Content Marketing",
		RecommendedPlatforms: []string{
			"linkedin_post", // professional insights
			"twitter_post",  // thought leadership
			"blog_featured", // long-form content
		},
		ContentStyle:     "Educational, insight-driven, actionable tips",
		VisualStyle:      "Infographics, data visualizations, quote cards",
		PostingFrequency: "Daily or multiple times per day",
		OptimalTimes:     []string{"Monday 7am", "Wednesday 12pm", "Friday 5pm"},
		HashtagStrategy:  "Topic (#MarketingTips), industry (#B2BMarketing), format (#Infographic)",
		CTAPattern:       "Read full article, Download guide, Subscribe for more",
	},
	"recruitment_agency": {
		CampaignType: "Recruitment Agency Portfolio",
		RecommendedPlatforms: []string{
			"linkedin_post",  // primary platform
			"twitter_post",   // industry news
			"facebook_post",  // local jobs
			"instagram_feed", // employer branding
		},
		ContentStyle:     "Mix of job listings, career advice, industry insights",
		VisualStyle:      "Professional settings, success stories, career tips graphics",
		PostingFrequency: "Daily job posts + 2-3x weekly thought leadership",
		OptimalTimes:     []string{"Monday 8am", "Wednesday 11am", "Friday 3pm"},
		HashtagStrategy:  "Job titles, skills, locations, career advice topics",
		CTAPattern:       "Apply now, Contact recruiter, View all jobs",
	},
}

// LookupTemplate returns the template for a campaign type.
func LookupTemplate(campaignType string) (Template, error) {
	tpl, ok := campaignTemplates[campaignType]
	if !ok {
		return Template{}, &UnknownTemplateError{
			CampaignType: campaignType,
			Available:    TemplateTypes(),
		}
	}
	return tpl, nil
}

// TemplateTypes returns all campaign type keys in sorted order.
func TemplateTypes() []string {
	types := make([]string, 0, len(campaignTemplates))
	for k := range campaignTemplates {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}
