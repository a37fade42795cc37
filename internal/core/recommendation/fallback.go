package recommendation

// SimulatedResponse 無金鑰時使用的固定模型回應，與真實回應走同一個解析流程
func SimulatedResponse(format Format, language string) string {
	ja := language == "ja"
	switch format {
	case FormatFreeText:
		if ja {
			return simulatedFreeTextJA
		}
		return simulatedFreeTextEN
	case FormatBilingualJSON:
		return simulatedBilingual
	default:
		if ja {
			return simulatedStructuredJA
		}
		return simulatedStructuredEN
	}
}

const simulatedFreeTextEN = `1. The Matrix (1999): This sci-fi action film blends mind-bending concepts with spectacular action sequences. The film's philosophical undertones and groundbreaking visual effects would appeal to someone who enjoys both thought-provoking narratives and high-energy storytelling.
2. Baby Driver (2017): This action-comedy features meticulously choreographed scenes set to an eclectic soundtrack spanning multiple music genres. The film's unique approach to integrating music into the narrative would resonate with someone who has diverse musical tastes.
3. Inception (2010): This thrilling sci-fi adventure combines complex storytelling with visually stunning action sequences. The film's intricate plot and emotional core would appeal to viewers who appreciate layered narratives with a mix of thoughtful concepts and exciting moments.
4. The Lord of the Rings: The Fellowship of the Ring (2001): This epic fantasy adventure brings Tolkien's world to life with stunning visuals and an emotional story. The film's sweeping score and grand themes align with both fantasy genre preferences and musical appreciation.
5. Guardians of the Galaxy (2014): This Marvel superhero film stands out for its fantastic soundtrack featuring classic rock and pop hits. The perfect blend of action, humor, and music makes it ideal for viewers with diverse genre interests.
6. La La Land (2016): This musical romantic drama celebrates creativity and passion. Its award-winning score and emotional storytelling would appeal to those who appreciate both musical composition and character-driven narratives.
7. Mad Max: Fury Road (2015): This high-octane action film is essentially a two-hour chase sequence set to an intense orchestral score. The film's visual storytelling and rhythmic editing make it feel almost like a feature-length music video.
8. Interstellar (2014): This sci-fi epic features a powerful Hans Zimmer score that drives the emotional core of the story. The film's blend of scientific concepts and human emotion would appeal to viewers who enjoy thoughtful sci-fi.
9. Whiplash (2014): This intense drama about a jazz drummer and his demanding instructor is perfect for music lovers. The film's exploration of musical excellence and personal sacrifice resonates with anyone passionate about music.
10. Scott Pilgrim vs. The World (2010): This unique action-comedy blends video game aesthetics with indie rock music. The film's eclectic soundtrack and visual style make it a perfect recommendation for viewers with diverse entertainment interests.`

const simulatedFreeTextJA = `1. 羅生門 (1950): 一つの事件を複数の視点から描く黒澤明の代表作です。人間の記憶と真実について考えさせられる物語は、じっくり考えることが好きな方に向いています。
2. 七人の侍 (1954): 村を守るために集まった侍たちの群像劇です。迫力ある戦闘と仲間との絆が、エネルギーに満ちた時間を過ごしたい方にぴったりです。
3. おくりびと (2008): 納棺師として働き始めたチェロ奏者の成長を描きます。音楽と静かな感動が、落ち着いた夜にゆっくり味わえる作品です。
4. 万引き家族 (2018): 血のつながらない家族の日常を丁寧に描いた作品です。家族や人とのつながりについて考えたい方におすすめです。
5. ドライブ・マイ・カー (2021): 喪失を抱えた演出家と寡黙なドライバーの対話を描きます。長い旅のような物語が、内省的な気分の時によく合います。`

const simulatedStructuredEN = "```json\n" + `{
  "recommendations": [
    {
      "title": "Watercolor Sketch Walk",
      "description": "Take a small sketchbook outside and paint scenes from your neighborhood. It combines light movement with creative expression.",
      "category": "creativity",
      "rating": 5,
      "impact": {"primary": "creative expression", "secondary": ["mindfulness", "observation"], "score": 0.9},
      "contextualRelevance": {"mood": ["creative", "relaxed"], "timeOfDay": ["morning", "afternoon"], "energyRequired": 2},
      "personalizedInsights": {"alignmentReason": ["High openness enjoys new forms of expression"], "benefitAreas": ["creativity", "stress relief"], "challengeAreas": ["starting without judging results"]},
      "enjoymentFactors": {"shortTerm": "Seeing colors come together on the page", "longTerm": "A growing visual journal", "relatedInterests": ["art", "nature"]},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0.9, "personalGrowth": "Builds patience and attention to detail"},
      "socialAspect": {"groupActivity": false, "interactionType": "solo", "socialInteractionLevel": 1}
    },
    {
      "title": "Home Cooking Experiment",
      "description": "Pick a cuisine you have never cooked and recreate one dish from it. Cooking engages the senses and rewards curiosity.",
      "category": "creativity",
      "rating": 4,
      "impact": {"primary": "creative skills", "secondary": ["nutrition"], "score": 0.8},
      "contextualRelevance": {"mood": ["creative", "focused"], "timeOfDay": ["evening"], "energyRequired": 3},
      "personalizedInsights": {"alignmentReason": ["Curiosity about new cultures"], "benefitAreas": ["self-care"], "challengeAreas": ["finding ingredients"]},
      "enjoymentFactors": {"shortTerm": "A fresh meal", "longTerm": "A wider cooking repertoire", "relatedInterests": ["food", "travel"]},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0.8, "personalGrowth": "Confidence in trying unfamiliar things"},
      "socialAspect": {"groupActivity": false, "interactionType": "solo", "socialInteractionLevel": 1}
    },
    {
      "title": "Evening Yoga Flow",
      "description": "A gentle 20-minute yoga sequence to release tension from the day. Slow breathing helps the body shift into rest.",
      "category": "wellness",
      "rating": 4,
      "impact": {"primary": "physical relaxation", "secondary": ["sleep quality"], "score": 0.8},
      "contextualRelevance": {"mood": ["relaxed"], "timeOfDay": ["evening", "night"], "energyRequired": 2},
      "personalizedInsights": {"alignmentReason": ["Supports a calm evening routine"], "benefitAreas": ["flexibility", "stress relief"], "challengeAreas": ["keeping a regular habit"]},
      "enjoymentFactors": {"shortTerm": "Immediate calm", "longTerm": "Better sleep", "relatedInterests": ["meditation"]},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0.8, "personalGrowth": "Body awareness"},
      "socialAspect": {"groupActivity": false, "interactionType": "solo", "socialInteractionLevel": 0}
    },
    {
      "title": "Guided Breathing Meditation",
      "description": "Ten minutes of guided breathing with a meditation app. It is an easy entry point into mindfulness practice.",
      "category": "relaxation",
      "rating": 4,
      "impact": {"primary": "mental clarity", "secondary": ["focus"], "score": 0.7},
      "contextualRelevance": {"mood": ["focused", "relaxed"], "timeOfDay": ["morning", "night"], "energyRequired": 1},
      "personalizedInsights": {"alignmentReason": ["Helps balance a busy mind"], "benefitAreas": ["focus"], "challengeAreas": ["sitting still"]},
      "enjoymentFactors": {"shortTerm": "A quieter mind", "longTerm": "Emotional resilience", "relatedInterests": ["wellness"]},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0.7, "personalGrowth": "Self-awareness"},
      "socialAspect": {"groupActivity": false, "interactionType": "online", "socialInteractionLevel": 0}
    },
    {
      "title": "Local Museum Night",
      "description": "Visit an evening exhibition at a nearby museum. Many museums host talks that make art history approachable.",
      "category": "culture",
      "rating": 4,
      "impact": {"primary": "cultural enrichment", "secondary": ["inspiration"], "score": 0.8},
      "contextualRelevance": {"mood": ["creative", "social"], "timeOfDay": ["evening"], "energyRequired": 3},
      "personalizedInsights": {"alignmentReason": ["Feeds curiosity about art"], "benefitAreas": ["learning"], "challengeAreas": ["planning ahead for tickets"]},
      "enjoymentFactors": {"shortTerm": "New ideas", "longTerm": "A deeper appreciation of art", "relatedInterests": ["art", "history"]},
      "wellbeingAspects": {"mindfulness": false, "fulfillmentScore": 0.8, "personalGrowth": "Broader perspective"},
      "socialAspect": {"groupActivity": true, "interactionType": "group", "socialInteractionLevel": 2}
    },
    {
      "title": "Community Choir Session",
      "description": "Join a beginner-friendly community choir for one rehearsal. Singing together builds connection without pressure to perform.",
      "category": "social",
      "rating": 3,
      "impact": {"primary": "social connection", "secondary": ["music skills"], "score": 0.7},
      "contextualRelevance": {"mood": ["social", "energetic"], "timeOfDay": ["evening"], "energyRequired": 3},
      "personalizedInsights": {"alignmentReason": ["Combines music with meeting people"], "benefitAreas": ["belonging"], "challengeAreas": ["first-time nerves"]},
      "enjoymentFactors": {"shortTerm": "Shared energy", "longTerm": "New friendships", "relatedInterests": ["music"]},
      "wellbeingAspects": {"mindfulness": false, "fulfillmentScore": 0.7, "personalGrowth": "Confidence in groups"},
      "socialAspect": {"groupActivity": true, "interactionType": "group", "socialInteractionLevel": 4}
    }
  ]
}` + "\n```"

const simulatedStructuredJA = "```json\n" + `{
  "recommendations": [
    {
      "title": "水彩スケッチ散歩",
      "description": "小さなスケッチブックを持って近所の風景を描いてみましょう。軽い運動と創作を同時に楽しめます。",
      "category": "creativity",
      "rating": 5,
      "impact": {"primary": "創造的表現", "secondary": ["マインドフルネス"], "score": 0.9},
      "contextualRelevance": {"mood": ["creative", "relaxed"], "timeOfDay": ["morning", "afternoon"], "energyRequired": 2},
      "enjoymentFactors": {"shortTerm": "色が重なる楽しさ", "longTerm": "描きためたスケッチ帳", "relatedInterests": ["アート", "自然"]},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0.9, "personalGrowth": "観察力と忍耐力が育つ"},
      "socialAspect": {"groupActivity": false, "interactionType": "solo", "socialInteractionLevel": 1}
    },
    {
      "title": "世界の家庭料理に挑戦",
      "description": "作ったことのない国の料理を一品選んで再現してみましょう。五感を使う料理は好奇心を満たしてくれます。",
      "category": "creativity",
      "rating": 4,
      "impact": {"primary": "創造的スキル", "secondary": ["食生活"], "score": 0.8},
      "contextualRelevance": {"mood": ["creative", "focused"], "timeOfDay": ["evening"], "energyRequired": 3},
      "enjoymentFactors": {"shortTerm": "できたての一皿", "longTerm": "料理のレパートリー", "relatedInterests": ["料理", "旅行"]},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0.8, "personalGrowth": "新しいことへの自信"},
      "socialAspect": {"groupActivity": false, "interactionType": "solo", "socialInteractionLevel": 1}
    },
    {
      "title": "夜のヨガ",
      "description": "20分のやさしいヨガで一日の緊張をほぐします。ゆっくりした呼吸が体を休息モードへ導きます。",
      "category": "wellness",
      "rating": 4,
      "impact": {"primary": "身体のリラックス", "secondary": ["睡眠の質"], "score": 0.8},
      "contextualRelevance": {"mood": ["relaxed"], "timeOfDay": ["evening", "night"], "energyRequired": 2},
      "enjoymentFactors": {"shortTerm": "すぐに感じる落ち着き", "longTerm": "よりよい睡眠", "relatedInterests": ["瞑想"]},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0.8, "personalGrowth": "身体への気づき"},
      "socialAspect": {"groupActivity": false, "interactionType": "solo", "socialInteractionLevel": 0}
    },
    {
      "title": "呼吸瞑想",
      "description": "アプリのガイドに沿って10分間の呼吸瞑想をしてみましょう。マインドフルネスの入り口として最適です。",
      "category": "relaxation",
      "rating": 4,
      "impact": {"primary": "心の明晰さ", "secondary": ["集中力"], "score": 0.7},
      "contextualRelevance": {"mood": ["focused", "relaxed"], "timeOfDay": ["morning", "night"], "energyRequired": 1},
      "enjoymentFactors": {"shortTerm": "静かな心", "longTerm": "感情の安定", "relatedInterests": ["ウェルネス"]},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0.7, "personalGrowth": "自己理解"},
      "socialAspect": {"groupActivity": false, "interactionType": "online", "socialInteractionLevel": 0}
    },
    {
      "title": "美術館の夜間開館",
      "description": "近くの美術館の夜間展示に出かけてみましょう。ギャラリートークがあれば作品をより身近に感じられます。",
      "category": "culture",
      "rating": 4,
      "impact": {"primary": "文化的な刺激", "secondary": ["インスピレーション"], "score": 0.8},
      "contextualRelevance": {"mood": ["creative", "social"], "timeOfDay": ["evening"], "energyRequired": 3},
      "enjoymentFactors": {"shortTerm": "新しい発見", "longTerm": "芸術への理解", "relatedInterests": ["アート", "歴史"]},
      "wellbeingAspects": {"mindfulness": false, "fulfillmentScore": 0.8, "personalGrowth": "視野が広がる"},
      "socialAspect": {"groupActivity": true, "interactionType": "group", "socialInteractionLevel": 2}
    },
    {
      "title": "地域の合唱サークル",
      "description": "初心者歓迎の合唱サークルに一度参加してみましょう。一緒に歌うことで気負わずにつながりが生まれます。",
      "category": "social",
      "rating": 3,
      "impact": {"primary": "社会的つながり", "secondary": ["音楽スキル"], "score": 0.7},
      "contextualRelevance": {"mood": ["social", "energetic"], "timeOfDay": ["evening"], "energyRequired": 3},
      "enjoymentFactors": {"shortTerm": "みんなで生む一体感", "longTerm": "新しい友人", "relatedInterests": ["音楽"]},
      "wellbeingAspects": {"mindfulness": false, "fulfillmentScore": 0.7, "personalGrowth": "人前での自信"},
      "socialAspect": {"groupActivity": true, "interactionType": "group", "socialInteractionLevel": 4}
    }
  ]
}` + "\n```"

const simulatedBilingual = "```json\n" + `{
  "recommendations": [
    {
      "title": "水彩スケッチ散歩",
      "title": "Watercolor Sketch Walk",
      "description": "スケッチブックを持って近所の風景を描いてみましょう。",
      "description": "Take a sketchbook outside and paint scenes from your neighborhood.",
      "category": "creativity",
      "rating": 5,
      "impact": {"primary": "創造的表現", "primary": "creative expression", "secondary": ["観察力"], "secondary": ["observation"], "score": 0.9},
      "contextualRelevance": {"mood": ["creative"], "timeOfDay": ["morning"], "energyRequired": 2},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0.9, "personalGrowth": "忍耐力", "personalGrowth": "Patience"},
      "socialAspect": {"groupActivity": false, "interactionType": "solo", "socialInteractionLevel": 1}
    },
    {
      "title": "夜のヨガ",
      "title": "Evening Yoga Flow",
      "description": "20分のやさしいヨガで一日の緊張をほぐします。",
      "description": "A gentle 20-minute yoga sequence to release the day's tension.",
      "category": "wellness",
      "rating": 4,
      "impact": {"primary": "身体のリラックス", "primary": "physical relaxation", "secondary": ["睡眠"], "secondary": ["sleep"], "score": 0.8},
      "contextualRelevance": {"mood": ["relaxed"], "timeOfDay": ["evening"], "energyRequired": 2},
      "wellbeingAspects": {"mindfulness": true, "fulfillmentScore": 0.8, "personalGrowth": "身体への気づき", "personalGrowth": "Body awareness"},
      "socialAspect": {"groupActivity": false, "interactionType": "solo", "socialInteractionLevel": 0}
    },
    {
      "title": "地域の合唱サークル",
      "title": "Community Choir Session",
      "description": "初心者歓迎の合唱サークルに参加してみましょう。",
      "description": "Join a beginner-friendly community choir for one rehearsal.",
      "category": "social",
      "rating": 3,
      "impact": {"primary": "社会的つながり", "primary": "social connection", "secondary": ["音楽"], "secondary": ["music"], "score": 0.7},
      "contextualRelevance": {"mood": ["social"], "timeOfDay": ["evening"], "energyRequired": 3},
      "wellbeingAspects": {"mindfulness": false, "fulfillmentScore": 0.7, "personalGrowth": "人前での自信", "personalGrowth": "Confidence in groups"},
      "socialAspect": {"groupActivity": true, "interactionType": "group", "socialInteractionLevel": 4}
    }
  ]
}` + "\n```"
