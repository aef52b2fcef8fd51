package tracker

import "time"

var affirmations = []string{
	"I am capable of achieving my goals.", "I am focused and productive.", "Every day, I am getting better and better.",
	"I believe in my ability to succeed.", "I am creating the life of my dreams.", "I am worthy of all the good things that come my way.",
	"My potential to succeed is infinite.", "I am a powerhouse of creativity and intelligence.", "I am confident in my skills and abilities.",
	"I attract success and prosperity.", "My focus is a powerful tool for creation.", "I release all resistance to my goals.",
	"I am organized, efficient, and on top of my game.", "Challenges are opportunities for growth.", "I am disciplined and committed.",
	"My positive thoughts create my positive reality.", "I am a magnet for brilliant ideas.", "I complete my tasks with joy and enthusiasm.",
	"I am proud of the progress I make every day.", "My work makes a positive difference.", "I am building a future I am excited about.",
	"I easily overcome distractions.", "My mind is clear and my thoughts are focused.", "I am the architect of my life.",
	"Every small step I take leads to massive success.", "I am energized and ready to tackle my day.", "I trust my intuition to guide me.",
	"I celebrate my accomplishments, big and small.", "I learn and grow from every experience.", "I am persistent in the pursuit of my dreams.",
	"I am a creator of my own destiny.", "My ability to conquer my challenges is limitless.", "Today, I am victorious.",
	"I am motivated by my purpose, not my problems.", "I radiate confidence, certainty, and optimism.", "I am at peace with my past and excited for my future.",
	"My dedication is unwavering.", "I choose to be happy and to love myself today.", "I transform obstacles into stepping stones.",
	"I am worthy of respect and admiration.", "I am a leader and a positive influence.", "My workflow is smooth and efficient.",
	"I am grateful for my unique talents.", "I am a lifelong learner, always growing.", "My efforts are being supported by the universe.",
}

// DailyAffirmation picks the affirmation of the day of month.
func DailyAffirmation(now time.Time) string {
	return affirmations[now.Day()%len(affirmations)]
}

// Affirmation returns the n-th affirmation, wrapping around.
func Affirmation(n int) string {
	if n < 0 {
		n = -n
	}
	return affirmations[n%len(affirmations)]
}
