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

var jaMessages = map[string]string{
	"base.first":  "一塁",
	"base.second": "二塁",
	"base.third":  "三塁",
	"base.home":   "本塁",

	"pos.P":  "ピッチャー",
	"pos.C":  "キャッチャー",
	"pos.1B": "ファースト",
	"pos.2B": "セカンド",
	"pos.3B": "サード",
	"pos.SS": "ショート",
	"pos.LF": "レフト",
	"pos.CF": "センター",
	"pos.RF": "ライト",
	"pos.DH": "指名打者",

	"field.left":        "レフト方向",
	"field.center":      "センター方向",
	"field.right":       "ライト方向",
	"strength.weak":     "弱い",
	"strength.strong":   "痛烈な",
	"trajectory.ground": "ゴロ",
	"trajectory.line":   "ライナー",
	"trajectory.fly":    "フライ",
	"trajectory.popup":  "ポップフライ",
	"ball.desc":         "%[1]sへの%[2]s%[3]s",

	"bunt.direction.third_base_line": "三塁線",
	"bunt.direction.pitcher_front":   "ピッチャー前",
	"bunt.direction.first_base_line": "一塁線",
	"bunt.strength.very_weak":        "絶妙に勢いを殺した",
	"bunt.strength.weak":             "勢いを殺した",
	"bunt.strength.medium":           "やや強めの",

	"atbat.walk":               "%[1]s、フォアボールを選びました。",
	"atbat.intentional_walk":   "%[1]sは申告敬遠で一塁へ。",
	"atbat.strikeout.looking":  "%[1]s、見逃し三振！",
	"atbat.strikeout.swinging": "%[1]s、空振り三振！",
	"atbat.in_play":            "%[1]s、打った！%[2]s。",

	"bunt.success.sacrifice": "%[1]s、送りバント。%[2]sへ%[3]s打球。",
	"bunt.success.safety":    "%[1]s、セーフティバント！%[2]sへ%[3]s打球。",
	"bunt.foul":              "%[1]sのバントはファウル。",
	"bunt.foul_strikeout":    "%[1]sのバントはファウル、スリーバント失敗で三振！",
	"bunt.miss":              "%[1]s、バントを空振り。",
	"bunt.miss_strikeout":    "%[1]s、バントを空振りして三振！",
	"bunt.popup":             "%[1]sのバントは小フライ、アウト。",

	"squeeze.scored":        "三塁ランナー%[1]sが生還！スクイズ成功！",
	"squeeze.runner_out":    "三塁ランナー%[1]sは本塁タッチアウト！",
	"squeeze.runner_back":   "三塁ランナー%[1]sは帰塁。",
	"squeeze.runner_caught": "飛び出した三塁ランナー%[1]sもアウト！",

	"fielding.bobble":           "%[1]sがもたつく間に一塁セーフ、内野安打！",
	"fielding.throw_first_out":  "%[1]sが一塁へ送球、アウト。",
	"fielding.throw_first_safe": "%[1]sが一塁へ送球、しかしセーフ！",
	"fielding.throw_lead_out":   "%[1]sが%[2]sへ送球、先行ランナーはアウト！",
	"fielding.throw_lead_safe":  "%[1]sが%[2]sへ送球するもセーフ！",

	"steal.safe":         "%[1]s、%[2]sへの盗塁成功！",
	"steal.caught":       "%[1]s、%[2]sへ走るも盗塁失敗！",
	"double_steal.intro": "ダブルスチール！キャッチャーは%[1]sへ送球。",

	"hit_and_run.extra_base":   "エンドラン成功！%[1]sのヒットで%[2]sは一気に%[3]sへ！",
	"hit_and_run.hit_caught":   "エンドラン、%[1]sはヒットも%[2]sは%[3]sでタッチアウト！",
	"hit_and_run.runner_moved": "エンドラン、%[1]sは打ち取られるも%[2]sは%[3]sへ進塁。",
	"hit_and_run.double_play":  "エンドラン失敗！%[1]sは打ち取られ、%[2]sも戻れずダブルプレー！",
	"hit_and_run.swing_miss":   "エンドランのサインも%[1]sは空振り。",

	"play.runs": "%[1]d点が入りました。",

	"pickoff.out":  "牽制球！%[1]sは%[2]sでタッチアウト！",
	"pickoff.safe": "牽制球、%[1]sは%[2]sへ帰塁してセーフ。",
	"pickoff.wild": "牽制悪送球！その間に%[1]sは%[2]sへ。",

	"defense.home_run":    "%[1]sの%[2]sはそのままスタンドへ、ホームラン！",
	"defense.hit.single":  "%[1]sの%[2]s、ヒット！",
	"defense.hit.double":  "%[1]sの%[2]s、ツーベースヒット！",
	"defense.hit.triple":  "%[1]sの%[2]s、スリーベースヒット！",
	"defense.error":       "%[1]sの打球を%[2]sがエラー、出塁。",
	"defense.double_play": "%[1]sの打球は%[2]sへ、ゲッツー！",
	"defense.sac_fly":     "%[1]sの打球は%[2]sが捕球、タッチアップで犠牲フライ！",
	"defense.ground_out":  "%[1]sの%[2]sを%[3]sがさばいてアウト。",
	"defense.fly_out":     "%[1]sの%[2]sを%[3]sがキャッチ、アウト。",
	"defense.line_out":    "%[1]sの%[2]sは%[3]sの正面、アウト。",
	"defense.pop_out":     "%[1]sの%[2]sを%[3]sが捕ってアウト。",
}

var enMessages = map[string]string{
	"base.first":  "first",
	"base.second": "second",
	"base.third":  "third",
	"base.home":   "home",

	"pos.P":  "the pitcher",
	"pos.C":  "the catcher",
	"pos.1B": "the first baseman",
	"pos.2B": "the second baseman",
	"pos.3B": "the third baseman",
	"pos.SS": "the shortstop",
	"pos.LF": "the left fielder",
	"pos.CF": "the center fielder",
	"pos.RF": "the right fielder",
	"pos.DH": "the designated hitter",

	"field.left":        "left",
	"field.center":      "center",
	"field.right":       "right",
	"strength.weak":     "soft ",
	"strength.strong":   "hard ",
	"trajectory.ground": "grounder",
	"trajectory.line":   "liner",
	"trajectory.fly":    "fly ball",
	"trajectory.popup":  "pop-up",
	"ball.desc":         "a %[2]s%[3]s to %[1]s",

	"bunt.direction.third_base_line": "down the third-base line",
	"bunt.direction.pitcher_front":   "in front of the mound",
	"bunt.direction.first_base_line": "down the first-base line",
	"bunt.strength.very_weak":        "perfectly deadened",
	"bunt.strength.weak":             "deadened",
	"bunt.strength.medium":           "firm",

	"atbat.walk":               "%[1]s draws a walk.",
	"atbat.intentional_walk":   "%[1]s is intentionally walked.",
	"atbat.strikeout.looking":  "%[1]s is caught looking. Strike three!",
	"atbat.strikeout.swinging": "%[1]s swings and misses. Strike three!",
	"atbat.in_play":            "%[1]s puts it in play: %[2]s.",

	"bunt.success.sacrifice": "%[1]s lays down a sacrifice, %[3]s, %[2]s.",
	"bunt.success.safety":    "%[1]s bunts for a hit, %[3]s, %[2]s!",
	"bunt.foul":              "%[1]s bunts it foul.",
	"bunt.foul_strikeout":    "%[1]s bunts foul with two strikes. That's a strikeout!",
	"bunt.miss":              "%[1]s misses the bunt.",
	"bunt.miss_strikeout":    "%[1]s misses the bunt with two strikes. Strikeout!",
	"bunt.popup":             "%[1]s pops the bunt up. Caught for the out.",

	"squeeze.scored":        "%[1]s comes home from third. The squeeze works!",
	"squeeze.runner_out":    "%[1]s is tagged out at the plate!",
	"squeeze.runner_back":   "%[1]s retreats to third.",
	"squeeze.runner_caught": "%[1]s is hung up off third and retired!",

	"fielding.bobble":           "It's bobbled by %[1]s and the batter is safe at first!",
	"fielding.throw_first_out":  "The throw from %[1]s to first is in time. Out.",
	"fielding.throw_first_safe": "The throw from %[1]s to first is late. Safe!",
	"fielding.throw_lead_out":   "The throw from %[1]s to %[2]s gets the lead runner!",
	"fielding.throw_lead_safe":  "The throw from %[1]s to %[2]s is too late!",

	"steal.safe":         "%[1]s steals %[2]s!",
	"steal.caught":       "%[1]s is caught stealing %[2]s!",
	"double_steal.intro": "Double steal! The catcher throws to %[1]s.",

	"hit_and_run.extra_base":   "Hit-and-run! %[1]s singles and %[2]s races to %[3]s!",
	"hit_and_run.hit_caught":   "Hit-and-run. %[1]s singles but %[2]s is thrown out at %[3]s!",
	"hit_and_run.runner_moved": "Hit-and-run. %[1]s is retired but %[2]s moves up to %[3]s.",
	"hit_and_run.double_play":  "Hit-and-run fails! %[1]s is out and %[2]s is doubled off!",
	"hit_and_run.swing_miss":   "The hit-and-run is on and %[1]s swings through it.",

	"pickoff.out":  "Pickoff! %[1]s is tagged out at %[2]s!",
	"pickoff.safe": "Throw over. %[1]s gets back to %[2]s safely.",
	"pickoff.wild": "The pickoff throw gets away! %[1]s takes %[2]s.",

	"defense.home_run":    "%[1]s hits %[2]s... gone! Home run!",
	"defense.hit.single":  "%[1]s hits %[2]s for a single!",
	"defense.hit.double":  "%[1]s hits %[2]s for a double!",
	"defense.hit.triple":  "%[1]s hits %[2]s for a triple!",
	"defense.error":       "%[1]s reaches on an error by %[2]s.",
	"defense.double_play": "%[1]s hits into a double play started by %[2]s!",
	"defense.sac_fly":     "%[1]s flies out to %[2]s and the runner tags and scores. Sacrifice fly!",
	"defense.ground_out":  "%[1]s hits %[2]s, fielded by %[3]s for the out.",
	"defense.fly_out":     "%[1]s hits %[2]s, caught by %[3]s.",
	"defense.line_out":    "%[1]s hits %[2]s right at %[3]s. Out.",
	"defense.pop_out":     "%[1]s hits %[2]s, %[3]s makes the catch.",
}
