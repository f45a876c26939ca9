// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// SupportedLanguages lists the commentary locales, default first.
var SupportedLanguages = []language.Tag{language.Japanese, language.English}

var (
	languageMatcher = language.NewMatcher(SupportedLanguages)
	commentary      = mustBuildCatalog()
)

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Japanese))
	for key, msg := range jaMessages {
		if err := b.SetString(language.Japanese, key, msg); err != nil {
			panic(err)
		}
	}
	for key, msg := range enMessages {
		if err := b.SetString(language.English, key, msg); err != nil {
			panic(err)
		}
	}
	err := b.Set(language.English, "play.runs", plural.Selectf(1, "%d",
		"=1", "A run scores.",
		plural.Other, "%[1]d runs score."))
	if err != nil {
		panic(err)
	}
	return b
}

// MatchLanguage returns the supported locale closest to tag.
func MatchLanguage(tag language.Tag) language.Tag {
	_, idx, _ := languageMatcher.Match(tag)
	return SupportedLanguages[idx]
}

// Narrator renders play outcomes into commentary. It holds no play state.
type Narrator struct {
	lang    language.Tag
	printer *message.Printer
}

// NewNarrator returns a narrator for the supported locale closest to tag.
func NewNarrator(tag language.Tag) *Narrator {
	lang := MatchLanguage(tag)
	return &Narrator{
		lang:    lang,
		printer: message.NewPrinter(lang, message.Catalog(commentary)),
	}
}

// Language returns the locale the narrator renders in.
func (n *Narrator) Language() language.Tag {
	return n.lang
}

func (n *Narrator) say(key string, args ...any) string {
	return n.printer.Sprintf(key, args...)
}

// join concatenates non-empty sentences with the locale's separator.
func (n *Narrator) join(parts ...string) string {
	sep := " "
	if n.lang == language.Japanese {
		sep = ""
	}
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func (n *Narrator) base(b Base) string {
	return n.say("base." + string(b))
}

func (n *Narrator) position(p Position) string {
	return n.say("pos." + string(p))
}

func (n *Narrator) battedBall(b BattedBall) string {
	strength := ""
	if b.Strength != StrengthMedium {
		strength = n.say("strength." + string(b.Strength))
	}
	return n.say("ball.desc",
		n.say("field."+string(b.Field)),
		strength,
		n.say("trajectory."+string(b.Trajectory)))
}

func (n *Narrator) atBat(batter string, r AtBatResult) string {
	switch r.Outcome {
	case AtBatWalk:
		if r.Intentional {
			return n.say("atbat.intentional_walk", batter)
		}
		return n.say("atbat.walk", batter)
	case AtBatStrikeout:
		if r.Looking {
			return n.say("atbat.strikeout.looking", batter)
		}
		return n.say("atbat.strikeout.swinging", batter)
	}
	if r.BattedBall == nil {
		return ""
	}
	return n.say("atbat.in_play", batter, n.battedBall(*r.BattedBall))
}

func (n *Narrator) bunt(batter string, buntType BuntType, r BuntResult) string {
	switch r.Outcome {
	case BuntSuccess:
		key := "bunt.success.sacrifice"
		if buntType == BuntSafety {
			key = "bunt.success.safety"
		}
		return n.say(key, batter,
			n.say("bunt.direction."+string(r.Ball.Direction)),
			n.say("bunt.strength."+string(r.Ball.Strength)))
	case BuntFoul:
		if r.IsStrikeout {
			return n.say("bunt.foul_strikeout", batter)
		}
		return n.say("bunt.foul", batter)
	case BuntSwingMiss:
		if r.IsStrikeout {
			return n.say("bunt.miss_strikeout", batter)
		}
		return n.say("bunt.miss", batter)
	case BuntPopup:
		return n.say("bunt.popup", batter)
	}
	return ""
}

func (n *Narrator) squeezeRunner(runner string, r SqueezeResult) string {
	switch {
	case r.RunnerSafe:
		return n.say("squeeze.scored", runner)
	case r.Outcome == BuntSuccess:
		return n.say("squeeze.runner_out", runner)
	case r.Outcome == BuntFoul:
		return n.say("squeeze.runner_back", runner)
	}
	return n.say("squeeze.runner_caught", runner)
}

func (n *Narrator) buntFielding(fielder Position, play FieldingPlay) string {
	switch play {
	case PlayBuntSingle:
		return n.say("fielding.bobble", n.position(fielder))
	case PlaySacrifice:
		return n.say("fielding.throw_first_out", n.position(fielder))
	case PlayBeatThrow:
		return n.say("fielding.throw_first_safe", n.position(fielder))
	}
	return ""
}

func (n *Narrator) leadThrow(fielder Position, target Base, out bool) string {
	if out {
		return n.say("fielding.throw_lead_out", n.position(fielder), n.base(target))
	}
	return n.say("fielding.throw_lead_safe", n.position(fielder), n.base(target))
}

func (n *Narrator) steal(runner string, to Base, safe bool) string {
	if safe {
		return n.say("steal.safe", runner, n.base(to))
	}
	return n.say("steal.caught", runner, n.base(to))
}

func (n *Narrator) runs(runs int) string {
	if runs <= 0 {
		return ""
	}
	return n.say("play.runs", runs)
}

func (n *Narrator) hitAndRun(batter, runner string, r HitAndRunResult) string {
	switch r.Outcome {
	case HitAndRunExtraBase:
		return n.say("hit_and_run.extra_base", batter, runner, n.base(r.RunnerTo))
	case HitAndRunHitCaught:
		return n.say("hit_and_run.hit_caught", batter, runner, n.base(r.From.Next()))
	case HitAndRunRunnerMoved:
		return n.say("hit_and_run.runner_moved", batter, runner, n.base(r.RunnerTo))
	case HitAndRunDoublePlay:
		return n.say("hit_and_run.double_play", batter, runner)
	case HitAndRunStolen:
		return n.join(n.say("hit_and_run.swing_miss", batter), n.steal(runner, r.From.Next(), true))
	case HitAndRunCaught:
		return n.join(n.say("hit_and_run.swing_miss", batter), n.steal(runner, r.From.Next(), false))
	}
	return ""
}

func (n *Narrator) pickoff(runner string, target Base, outcome PickoffOutcome) string {
	switch outcome {
	case PickoffOut:
		return n.say("pickoff.out", runner, n.base(target))
	case PickoffSafe:
		return n.say("pickoff.safe", runner, n.base(target))
	case PickoffWildThrow:
		return n.say("pickoff.wild", runner, n.base(target.Next()))
	}
	return ""
}

func (n *Narrator) ballInPlay(batter string, ball BattedBall, r DefensiveResult) string {
	desc := n.battedBall(ball)
	fielder := n.position(r.Fielder)
	var line string
	switch r.Play {
	case PlayHomeRun:
		line = n.say("defense.home_run", batter, desc)
	case PlayHit:
		line = n.say("defense.hit."+string(r.Hit), batter, desc)
	case PlayError:
		line = n.say("defense.error", batter, fielder)
	case PlayDoublePlay:
		line = n.say("defense.double_play", batter, fielder)
	case PlaySacFly:
		line = n.say("defense.sac_fly", batter, fielder)
	default:
		line = n.say("defense."+string(r.Play), batter, desc, fielder)
	}
	return n.join(line, n.runs(r.RunsScored))
}
