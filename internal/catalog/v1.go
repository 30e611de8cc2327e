package catalog

import "auravo-quiz/internal/domain"

// quizV1 is the launch catalog. Frozen; do not edit published questions.
var quizV1 = []Question{
	{
		ID:       1,
		Question: "During a team meeting when someone presents an idea you disagree with, you typically:",
		Options: []Option{
			{"Ask clarifying questions and point out potential gaps in their logic", domain.ArchetypeAnalyst},
			{"Express enthusiasm first, then gently share concerns about how it might impact the team", domain.ArchetypeConnector},
			{"Quickly state your counter-perspective and suggest a better direction", domain.ArchetypeLeader},
			{"Stay quiet initially, processing internally before sharing thoughts later if asked", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       2,
		Question: "When preparing for an important presentation, you focus most on:",
		Options: []Option{
			{"Structuring content with clear data points and logical flow", domain.ArchetypeAnalyst},
			{"Creating an emotional connection and understanding your audience's needs", domain.ArchetypeConnector},
			{"Crafting a compelling opening and a powerful call to action", domain.ArchetypeLeader},
			{"Rehearsing extensively to avoid mistakes and calm your nerves", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       3,
		Question: "When receiving critical feedback about your communication style, you:",
		Options: []Option{
			{"Analyze it objectively and ask for specific examples to improve", domain.ArchetypeAnalyst},
			{"Feel it deeply, take time to process, then seek to understand the other person's feelings", domain.ArchetypeConnector},
			{"Defend your approach if you believe in it, but adapt quickly if it serves your goals", domain.ArchetypeLeader},
			{"Internalize it heavily and replay the conversation in your mind repeatedly", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       4,
		Question: "In a networking event, your natural communication style is:",
		Options: []Option{
			{"Focused and purposeful—you prefer deep, meaningful one-on-one conversations", domain.ArchetypeAnalyst},
			{"Warm and relatable—you quickly find common ground and make people feel comfortable", domain.ArchetypeConnector},
			{"Confident and magnetic—you naturally draw people in and command attention", domain.ArchetypeLeader},
			{"Observant and reserved—you listen more than you speak and warm up slowly", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       5,
		Question: "When you need to influence someone's decision, you:",
		Options: []Option{
			{"Present facts, data, and a well-reasoned argument", domain.ArchetypeAnalyst},
			{"Appeal to their emotions and show how it benefits everyone involved", domain.ArchetypeConnector},
			{"Paint a vision and inspire them to see the bigger opportunity", domain.ArchetypeLeader},
			{"Hesitate to push, preferring to share your view gently and hope they come around", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       6,
		Question: "Your biggest struggle when speaking in high-stakes situations is:",
		Options: []Option{
			{"Coming across as too cold or detached, even when you care deeply", domain.ArchetypeAnalyst},
			{"Over-explaining or losing focus because you're trying to please everyone", domain.ArchetypeConnector},
			{"Being too direct or overwhelming others with your intensity", domain.ArchetypeLeader},
			{"Holding back your true thoughts and underestimating your own voice", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       7,
		Question: "People describe your voice and presence as:",
		Options: []Option{
			{"Clear, precise, and authoritative", domain.ArchetypeAnalyst},
			{"Warm, expressive, and engaging", domain.ArchetypeConnector},
			{"Powerful, commanding, and persuasive", domain.ArchetypeLeader},
			{"Soft, thoughtful, and introspective", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       8,
		Question: "When you disagree with a group decision, you:",
		Options: []Option{
			{"Speak up immediately with logic and evidence to challenge it", domain.ArchetypeAnalyst},
			{"Express concern in a diplomatic way, focusing on how it affects people", domain.ArchetypeConnector},
			{"Assert your viewpoint firmly and rally others to reconsider", domain.ArchetypeLeader},
			{"Go along with it outwardly but feel frustrated internally", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       9,
		Question: "Your ideal communication environment is one where:",
		Options: []Option{
			{"Ideas are debated rigorously and decisions are made based on merit", domain.ArchetypeAnalyst},
			{"Everyone feels heard, valued, and emotionally safe to share", domain.ArchetypeConnector},
			{"There's clear direction, decisive leadership, and bold action", domain.ArchetypeLeader},
			{"People are patient, thoughtful, and no one is put on the spot", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       10,
		Question: "When telling a story, you naturally emphasize:",
		Options: []Option{
			{"The sequence of events, facts, and lessons learned", domain.ArchetypeAnalyst},
			{"The emotions involved and how people felt at each stage", domain.ArchetypeConnector},
			{"The bold choices made and the dramatic outcome", domain.ArchetypeLeader},
			{"The inner reflections and personal meaning behind it", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       11,
		Question: "You feel most confident speaking when:",
		Options: []Option{
			{"You've thoroughly researched the topic and know your material inside out", domain.ArchetypeAnalyst},
			{"You feel emotionally connected to the subject and your audience", domain.ArchetypeConnector},
			{"You're speaking about something you're passionate about and believe in strongly", domain.ArchetypeLeader},
			{"You're in a safe, small setting with people who already trust you", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       12,
		Question: "If someone interrupts you mid-sentence, you typically:",
		Options: []Option{
			{"Pause and redirect the conversation back to your point logically", domain.ArchetypeAnalyst},
			{"Let them speak first and adjust your tone to keep harmony", domain.ArchetypeConnector},
			{"Firmly reclaim your space and finish your thought", domain.ArchetypeLeader},
			{"Stop talking and may not circle back to finish your point", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       13,
		Question: "Your communication superpower is:",
		Options: []Option{
			{"Breaking down complex ideas into clear, digestible insights", domain.ArchetypeAnalyst},
			{"Making people feel seen, understood, and emotionally supported", domain.ArchetypeConnector},
			{"Inspiring action and galvanizing people around a shared vision", domain.ArchetypeLeader},
			{"Seeing nuance and depth that others miss", domain.ArchetypeHiddenVoice},
		},
	},
	{
		ID:       14,
		Question: "What you most want to improve about your voice is:",
		Options: []Option{
			{"Adding warmth and emotional resonance without losing precision", domain.ArchetypeAnalyst},
			{"Being more concise and assertive without losing empathy", domain.ArchetypeConnector},
			{"Balancing strength with approachability and active listening", domain.ArchetypeLeader},
			{"Speaking up with confidence and owning your full presence", domain.ArchetypeHiddenVoice},
		},
	},
}
