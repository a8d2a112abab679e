package lexicon

// Default returns the built-in catalog. The theme order here doubles as the
// classification tie-break: text matching several themes resolves to the
// earliest one in this list.
func Default() *Lexicon {
	return &Lexicon{
		themeOrder: []Theme{
			ThemeAnxiety,
			ThemeSadness,
			ThemeStress,
			ThemeLoneliness,
			ThemeAnger,
			ThemeOverwhelm,
		},
		keywords: map[Theme][]string{
			ThemeAnxiety:    {"anxious", "worried", "panic", "nervous"},
			ThemeSadness:    {"sad", "depressed", "down", "crying"},
			ThemeStress:     {"stressed", "pressure", "overwhelmed", "too much"},
			ThemeLoneliness: {"lonely", "alone", "isolated", "disconnected"},
			ThemeAnger:      {"angry", "mad", "furious", "frustrated"},
			ThemeOverwhelm:  {"overwhelmed", "can't handle", "too much"},
		},
		crisis: []string{
			"suicide", "kill myself", "end it all", "hurt myself", "self harm", "die", "death",
			"hopeless", "no point", "better off dead", "can't go on", "want to die",
		},
		responses: map[Theme][]string{
			ThemeAnxiety: {
				"Anxiety can feel overwhelming, but you're taking a positive step by acknowledging it. Research shows that naming our emotions can help reduce their intensity. Can you tell me what specific thoughts or situations are contributing to your anxiety right now?",
				"I hear that you're feeling anxious. One evidence-based technique that many find helpful is the 5-4-3-2-1 grounding method: name 5 things you can see, 4 you can touch, 3 you can hear, 2 you can smell, and 1 you can taste. Would you like to try this together?",
				"Anxiety often involves our mind focusing on 'what if' scenarios. A helpful approach is to gently ask yourself: 'Is this thought helpful right now?' and 'What would I tell a good friend in this situation?' What comes up for you when you consider these questions?",
			},
			ThemeSadness: {
				"Thank you for sharing these difficult feelings with me. Sadness is a natural human emotion that often signals something important to us. Research shows that allowing ourselves to feel sadness, rather than pushing it away, can be part of healthy emotional processing. What do you think your sadness might be telling you?",
				"I'm sorry you're going through this difficult time. Sometimes when we're sad, it can help to practice self-compassion - treating ourselves with the same kindness we'd show a good friend. What would you say to comfort a friend who was feeling exactly as you do right now?",
				"Sadness can feel heavy and isolating. Studies show that gentle movement, even just a short walk, can help shift our emotional state. When you're ready, what's one small, nurturing thing you could do for yourself today?",
			},
			ThemeStress: {
				"Stress affects us all, and recognizing it is the first step toward managing it effectively. Research indicates that our breathing directly impacts our stress response. Would you be open to trying a brief breathing exercise together - inhaling for 4 counts, holding for 4, and exhaling for 6?",
				"It sounds like you're carrying a lot right now. Stress often comes from feeling like we have too much to handle at once. Sometimes it helps to break things down: what's one specific thing that's contributing to your stress that we could explore together?",
				"Chronic stress can impact both our mental and physical well-being. Evidence-based stress management often involves identifying what's within our control versus what isn't. What aspects of your current situation feel most within your influence right now?",
			},
			ThemeLoneliness: {
				"Loneliness is one of the most universal human experiences, yet it can feel so isolating. Research shows that even brief, meaningful connections can help. I'm glad you're reaching out here. What does connection mean to you, and what has helped you feel less alone in the past?",
				"Feeling lonely doesn't necessarily mean being alone - sometimes we can feel lonely even when surrounded by people. This suggests loneliness is often about the quality of connection rather than quantity. What kind of connection are you most longing for right now?",
				"Studies indicate that helping others or engaging in meaningful activities can help combat loneliness by creating a sense of purpose and connection. What activities or causes have felt meaningful to you in the past?",
			},
			ThemeAnger: {
				"Anger often carries important information about our boundaries, values, or unmet needs. Rather than judging the anger, it can be helpful to get curious about what it's trying to tell you. What do you think might be underneath this anger?",
				"Feeling angry is completely valid - it's often a signal that something important to you has been threatened or violated. Research shows that acknowledging anger without acting impulsively can be powerful. What would it look like to honor this feeling while also taking care of yourself?",
				"Anger can be energizing but also exhausting. Evidence-based approaches often involve finding healthy ways to express and channel this energy. What has helped you process difficult emotions like this in the past?",
			},
			ThemeOverwhelm: {
				"Feeling overwhelmed often happens when we're trying to hold too much at once. It's like our emotional cup is overflowing. One approach that research supports is the practice of 'emotional triage' - identifying what needs immediate attention versus what can wait. What feels most urgent for you right now?",
				"When we're overwhelmed, our thinking can become scattered. A helpful technique is to focus on just the next single step, rather than the whole mountain. What's one small, manageable thing you could focus on right now?",
				"Overwhelm often signals that we need to pause and recalibrate. Studies show that even brief moments of mindfulness can help restore our sense of balance. Would you be open to taking three deep breaths together and noticing what you're experiencing right now?",
			},
			ThemeGeneral: {
				"Thank you for sharing that with me. It takes courage to explore our inner experiences. What would it feel like to approach this situation with curiosity rather than judgment?",
				"I'm listening. Sometimes it helps to step back and ask: 'What would I need right now to feel even 10% better?' What comes to mind for you?",
				"Your feelings make complete sense given what you're experiencing. If you were to imagine your wisest, most compassionate self, what might they say to you right now?",
				"It sounds like you're navigating something complex. Research shows that simply naming and acknowledging our experiences can be therapeutic in itself. How does it feel to put words to what you're going through?",
				"I appreciate you trusting me with these feelings. Sometimes healing happens not through fixing or changing, but through being truly seen and understood. What feels most important for you to be heard about right now?",
			},
		},
		strategies: []Strategy{
			{
				Name:        "Box Breathing",
				Description: "Inhale for 4, hold for 4, exhale for 4, hold for 4. Repeat 4-6 times.",
				Theme:       ThemeAnxiety,
			},
			{
				Name:        "5-4-3-2-1 Grounding",
				Description: "Name 5 things you see, 4 you can touch, 3 you hear, 2 you smell, 1 you taste.",
				Theme:       ThemeAnxiety,
			},
			{
				Name:        "Self-Compassion Break",
				Description: "Acknowledge your pain, remember you're not alone, and offer yourself kindness.",
				Theme:       ThemeGeneral,
			},
			{
				Name:        "Progressive Muscle Relaxation",
				Description: "Tense and release each muscle group, starting from your toes up to your head.",
				Theme:       ThemeStress,
			},
			{
				Name:        "Emotional Check-in",
				Description: "Ask yourself: What am I feeling? Where do I feel it in my body? What do I need right now?",
				Theme:       ThemeGeneral,
			},
		},
		resources: []Resource{
			{
				Name:        "Crisis Text Line",
				Contact:     "Text HOME to 741741",
				Description: "24/7 crisis support via text message",
			},
			{
				Name:        "National Suicide Prevention Lifeline",
				Contact:     "Call or text 988",
				Description: "24/7 free and confidential support",
			},
			{
				Name:        "SAMHSA National Helpline",
				Contact:     "1-800-662-4357",
				Description: "Treatment referral and information service",
			},
			{
				Name:        "Psychology Today",
				Contact:     "psychologytoday.com",
				Description: "Find licensed therapists in your area",
			},
		},
	}
}
