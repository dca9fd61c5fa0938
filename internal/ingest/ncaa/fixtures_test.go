package ncaa

import (
	"fmt"
	"strings"
)

func box(header, info string, away, home, link string) string {
	var b strings.Builder
	b.WriteString("<table>\n")
	fmt.Fprintf(&b, "<tr>\n<td colspan=\"2\">%s</td>\n</tr>\n", header)
	if info != "" {
		fmt.Fprintf(&b, "<tr><td colspan=\"3\">%s</td></tr>\n", info)
	}
	fmt.Fprintf(&b, "<tr>\n<td><img src=\"logo.png\"></td>\n%s\n</tr>\n", away)
	b.WriteString("<tr><td></td><td></td><td></td></tr>\n")
	b.WriteString("<tr><td></td><td></td><td></td></tr>\n")
	fmt.Fprintf(&b, "<tr>\n<td><img src=\"logo.png\"></td>\n%s\n</tr>\n", home)
	fmt.Fprintf(&b, "<tr><td colspan=\"3\">%s</td></tr>\n", link)
	b.WriteString("</table>\n")
	return b.String()
}

func side(team, teamID, score string) string {
	if teamID == "" {
		return fmt.Sprintf("<td>%s</td>\n<td>%s</td>", team, score)
	}
	return fmt.Sprintf("<td><a href=\"/teams/%s\">%s</a></td>\n<td>%s</td>", teamID, team, score)
}

func page(body ...string) string {
	return "<html><body>\n" + strings.Join(body, "\n") + "\n</body></html>"
}

var scoreboardPage = page(
	box("11/04/2024 07:00 PM \n Attend: 9,314",
		"@ Madison Square Garden, New York (Empire Classic)",
		side("#3 Duke (5-1)", "575001", "72"),
		side("UNC (4-2)", "575002", "68"),
		`<a href="/contests/6001234/box_score">Box Score</a>`),
	box("11/04/2024 08:00 PM \n Attend: 1,200",
		"",
		side("Warren Wilson", "", "51"),
		side("Davidson (2-0)", "575010", "90"),
		`<a href="/contests/6001299/box_score">Box Score</a>`),
	box("11/04/2024 09:00 PM",
		"",
		side("Elon (1-1)", "575020", "Canceled"),
		side("Furman (2-0)", "575021", ""),
		""),
	box("11/04/2024 09:30 PM \n Attend: 500",
		"",
		side("Gonzaga (3-0)", "575030", "40"),
		side("Houston (3-0)", "575031", "38"),
		`<a target="LIVE_BOX_SCORE" href="/contests/6001300/box_score">Live</a>`),
)

const playByPlayPage = `<html><body>
<table><tr><th>Game</th></tr><tr><td>Duke at UNC</td></tr></table>
<table>
<thead><tr><th></th><th>1st Half</th><th>2nd Half</th><th>Total</th></tr></thead>
<tbody>
<tr><td>Duke</td><td>40</td><td>32</td><td>72</td></tr>
<tr><td>UNC</td><td>30</td><td>38</td><td>68</td></tr>
</tbody>
</table>
<table><tr><th>Officials</th></tr><tr><td>Smith, Jones</td></tr></table>
<table>
<thead><tr><th>Time</th><th>Duke</th><th>Score</th><th>UNC</th></tr></thead>
<tbody>
<tr><td>20:00:00</td><td colspan="3">period start</td></tr>
<tr><td>19:40:00</td><td>Allen, 2pt jumpshot made</td><td>2-0</td><td></td></tr>
</tbody>
</table>
</body></html>`

const individualStatsPage = `<html><body>
<table><tr><th>Game</th></tr><tr><td>Duke at UNC</td></tr></table>
<table>
<tr><th>#</th><th>Name</th><th>P</th><th>MP</th></tr>
<tr><td>1</td><td>Allen</td><td>G</td><td>30</td></tr>
<tr><td>5</td><td>Cole</td><td>C</td><td>28</td></tr>
<tr><td></td><td>TEAM</td><td></td><td></td></tr>
</table>
<table>
<tr><th>#</th><th>Name</th><th>P</th><th>MP</th></tr>
<tr><td>2</td><td>Hill</td><td>G</td><td>33</td></tr>
<tr><td>4</td><td>Irwin</td><td>F</td><td>25</td></tr>
</table>
</body></html>`

const teamStatsPage = `<html><body>
<table><tr><th>Game</th></tr><tr><td>Duke at UNC</td></tr></table>
<table>
<tr><th></th><th>Duke</th><th>UNC</th></tr>
<tr><td>FGM</td><td>27</td><td>25</td></tr>
<tr><td>FGA</td><td>60</td><td>62</td></tr>
<tr><td>FTA</td><td>20</td><td>15</td></tr>
<tr><td>ORebs</td><td>10</td><td>12</td></tr>
<tr><td>TO</td><td>12</td><td>11</td></tr>
<tr><td>PTS</td><td>72</td><td>68</td></tr>
</table>
</body></html>`
